// Package docs provides generated OpenAPI documentation.
//
// primer API
//
//	@title			primer API
//	@version		1.0
//	@description	Few-shot prompt priming for text-completion models, with example management.
//
//	@contact.name	API Support
//	@contact.url	https://github.com/jackzampolin/primer
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:5000
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/primer/serve.go -o ./swagger --parseDependency --parseInternal --outputTypes go
