package main

import "github.com/locuraseguraepi-cell/calculadora-talla/internal/app"

func main() {
	app.Run()
}
