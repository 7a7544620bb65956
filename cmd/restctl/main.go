// restctl tareas de mantenimiento de la API de restaurantes: migraciones,
// barrido de cuentas vencidas y reportes de ventas en PDF.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
