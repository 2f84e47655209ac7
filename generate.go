// Package webservice is the root of the teapot web service scaffold.
//
// Run `go generate` from the repository root before `go build` to compile the
// frontend in client/ into dist/, which the server serves at run time.
package webservice

//go:generate sh -c "PROJECT_ROOT=$DOLLAR(pwd) go run ./cmd/buildhook"
