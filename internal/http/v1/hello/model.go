package hello

import (
	"encoding/json"
	"strconv"
)

const (
	greeting = "Hello "
	subject  = "World!"
)

// Response is the fixed greeting returned by GET /api/hello.
type Response struct {
	Hello string `json:"hello" doc:"Greeting" example:"Hello "`
	World string `json:"world" doc:"Greeted subject" example:"World!"`
}

// GetOutput is the response wrapper for the hello endpoint.
type GetOutput struct {
	Body Response
}

// NewResponse returns a fresh greeting. Both fields are constants.
func NewResponse() Response {
	return Response{Hello: greeting, World: subject}
}

// HeadOutput carries the GET headers without a body.
type HeadOutput struct {
	ContentType   string `header:"Content-Type"`
	ContentLength string `header:"Content-Length"`
}

// NewHeadOutput describes the body GET would send.
func NewHeadOutput() *HeadOutput {
	return &HeadOutput{
		ContentType:   "application/json",
		ContentLength: strconv.Itoa(len(encodedResponse)),
	}
}

var encodedResponse, _ = json.Marshal(NewResponse())
