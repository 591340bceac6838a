// @title           Job Portal API
// @version         1.0
// @description     Job board API for job seekers, employers and admins.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:5000
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	_ "jobportal_backend/docs"
	"jobportal_backend/internal/app"
)

func main() {
	app.Run()
}
