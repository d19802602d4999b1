package main

import (
	"xivcrit.app/backend/cmd/app"
)

func main() {
	app.Run()
}
