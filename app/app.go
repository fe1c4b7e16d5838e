package app

import (
	"formflow-server/builder"
	"formflow-server/config"
	"formflow-server/database"
)

type App struct {
	Store    *database.FormStore
	Sessions *builder.Sessions
	config.Config
}
