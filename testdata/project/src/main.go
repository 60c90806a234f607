package main

import (
	"fmt"

	"example.com/shop/core/orders"
	"example.com/shop/features/checkout"
)

func main() {
	fmt.Println(orders.New(3).Total(), checkout.Label())
}
