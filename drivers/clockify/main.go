package main

import (
	tapclockify "github.com/datazip-inc/tap-clockify"
	driver "github.com/datazip-inc/tap-clockify/drivers/clockify/internal"
)

func main() {
	tapclockify.RegisterDriver(&driver.Clockify{})
}
