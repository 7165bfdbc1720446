package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/yigit/coursewindow/internal/pkg/logger"
	"github.com/yigit/coursewindow/internal/server"
)

// @title CourseWindow API
// @version 1.0
// @description Video courses that open only during their scheduled weekly batches.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

var Version = "dev"

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("No .env file found")
	}

	app := cli.NewApp()
	app.Name = "coursewindow"
	app.Usage = "scheduled video course API"
	app.Version = Version
	app.Flags = []cli.Flag{configFlag}
	app.Commands = []*cli.Command{&serveCommand, &checkCommand}
	app.DefaultCommand = serveCommand.Name

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("error: %v", err))
		os.Exit(1)
	}
}

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Usage:   "path to the YAML configuration file",
		Value:   "configs/config.yaml",
		EnvVars: []string{"CONFIG_PATH"},
	}
	courseFileFlag = &cli.StringFlag{
		Name:     "course-file",
		Usage:    "YAML file with a title and timeSlots",
		Required: true,
	}
	atFlag = &cli.StringFlag{
		Name:  "at",
		Usage: "RFC 3339 instant to evaluate (default: now)",
	}
	tzFlag = &cli.StringFlag{
		Name:  "tz",
		Usage: "viewer IANA timezone",
		Value: "UTC",
	}
)

var serveCommand = cli.Command{
	Name:  "serve",
	Usage: "Run the HTTP API",
	Action: func(ctx *cli.Context) error {
		srv, err := server.NewServer(ctx.String(configFlag.Name))
		if err != nil {
			logger.Error().Err(err).Msg("Failed to initialize server")
			return err
		}

		if err := srv.Run(); err != nil {
			logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
			return err
		}

		logger.Info().Msg("Application finished gracefully.")
		return nil
	},
}

var checkCommand = cli.Command{
	Name:  "check",
	Usage: "Evaluate the batches of a course file on a viewer's clock",
	Flags: []cli.Flag{courseFileFlag, atFlag, tzFlag},
	Action: func(ctx *cli.Context) error {
		return runCheck(ctx.App.Writer, ctx.String(courseFileFlag.Name), ctx.String(atFlag.Name), ctx.String(tzFlag.Name))
	},
}
