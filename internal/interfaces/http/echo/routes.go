package echo

import e "github.com/labstack/echo/v4"

func RegisterRoutes(server *e.Echo, importHandler *ImportHandler, userHandler *UserHandler) {
	server.POST("/api/v1/imports/upload", importHandler.Upload)
	server.POST("/api/v1/imports", importHandler.Initialize)
	server.POST("/api/v1/imports/:id/advance", importHandler.Advance)
	server.GET("/api/v1/imports/history", importHandler.History)
	server.GET("/api/v1/users/:id", userHandler.GetAccountByID)
}
