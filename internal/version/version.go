package version

var (
	AppName    = "Despot"
	AppVersion = "dev"
)
