package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/naybriones202/registro-academico/internal/app/models/dto"
	"github.com/naybriones202/registro-academico/internal/client"
	"github.com/naybriones202/registro-academico/internal/pkg/logger"
)

// consoleRenderer prints the controller's views to stdout.
type consoleRenderer struct{}

func (consoleRenderer) RenderSession(user *dto.UserResponse, privileged bool) {
	if user == nil {
		fmt.Println("Sesión cerrada.")
		return
	}
	fmt.Printf("Sesión iniciada: %s (%s)\n", user.Nombre, user.Rol)
	if privileged {
		fmt.Println("Comandos de profesor habilitados: eliminar, materia+")
	}
}

func (consoleRenderer) RenderUsers(users []dto.UserResponse) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCÉDULA\tNOMBRE\tROL")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Cedula, u.Nombre, u.Rol)
	}
	w.Flush()
}

func (consoleRenderer) RenderCourses(courses []dto.CourseResponse) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CÓDIGO\tNOMBRE")
	for _, c := range courses {
		fmt.Fprintf(w, "%d\t%s\n", c.Codigo, c.Nombre)
	}
	w.Flush()
}

func (consoleRenderer) RenderMessage(msg string) {
	fmt.Println(msg)
}

func (consoleRenderer) RenderError(msg string) {
	fmt.Println("Error:", msg)
}

func printHelp() {
	fmt.Println(`Comandos:
  login <cedula> <clave>   iniciar sesión
  logout                   cerrar sesión
  usuarios                 listar usuarios
  filtrar <texto>          filtrar usuarios ya cargados (vacío limpia)
  eliminar <id>            eliminar usuario (profesor)
  materias                 listar materias
  materia <nombre>         registrar materia (profesor)
  ayuda                    mostrar esta ayuda
  salir                    terminar`)
}

func main() {
	if err := godotenv.Load(); err == nil {
		logger.Debug().Msg("Loaded .env overrides")
	}

	defaultURL := os.Getenv("API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:3000"
	}
	serverURL := flag.String("server", defaultURL, "base URL of the records service")
	flag.Parse()

	store, err := client.NewSessionStore()
	if err != nil {
		logger.Fatal().Err(err).Msg("Cannot resolve session cache location")
	}

	api := client.NewClient(*serverURL)
	ctrl := client.NewController(api, store, consoleRenderer{}, zerolog.New(os.Stderr).With().Timestamp().Logger())

	if !ctrl.Restore() {
		fmt.Println("No hay sesión guardada. Use: login <cedula> <clave>")
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			fmt.Print("> ")
			continue
		}

		switch fields[0] {
		case "login":
			if len(fields) != 3 {
				fmt.Println("Uso: login <cedula> <clave>")
				break
			}
			// Blocks until the service answers; there is no timeout on
			// the login flow itself.
			if err := <-ctrl.Login(fields[1], fields[2]); err == nil {
				_ = ctrl.LoadUsers()
				_ = ctrl.LoadCourses()
			}
		case "logout":
			ctrl.Logout()
		case "usuarios":
			_ = ctrl.LoadUsers()
		case "filtrar":
			ctrl.SetFilter(strings.TrimSpace(strings.TrimPrefix(line, "filtrar")))
		case "eliminar":
			if len(fields) != 2 {
				fmt.Println("Uso: eliminar <id>")
				break
			}
			id, err := strconv.ParseInt(fields[1], 10, 64)
			if err != nil {
				fmt.Println("Identificador inválido")
				break
			}
			_ = ctrl.DeleteUser(id, func() bool {
				fmt.Printf("¿Eliminar usuario %d? (s/n): ", id)
				if !scanner.Scan() {
					return false
				}
				return strings.EqualFold(strings.TrimSpace(scanner.Text()), "s")
			})
		case "materias":
			_ = ctrl.LoadCourses()
		case "materia":
			_ = ctrl.CreateCourse(strings.TrimSpace(strings.TrimPrefix(line, "materia")))
		case "ayuda":
			printHelp()
		case "salir":
			return
		default:
			fmt.Println("Comando desconocido. Escriba 'ayuda'.")
		}
		fmt.Print("> ")
	}
}
