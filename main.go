package main

import "github.com/reviewradar/review-api/cmd"

// @title           ReviewRadar API
// @version         1.0.0
// @description     Aggregates product reviews from video platforms and shopping listings
// @contact.name    API Support
// @contact.url     https://github.com/reviewradar/review-api
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
