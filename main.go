package main

import "facturacion-admin/cmd"

func main() {
	cmd.Execute()
}
