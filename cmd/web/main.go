package main

import "hirepro_backend/internal/app"

func main() {
	app.Run()
}
