package docs

// @title           Report Service API
// @version         1.0
// @description     Turns timesheet exports into mileage reports between library branches. Reports are returned as JSON or as xlsx, csv or pdf downloads and announced on a websocket feed.

// @host      localhost:3000
// @BasePath  /
