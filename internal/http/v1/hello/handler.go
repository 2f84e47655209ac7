package hello

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/ctfkit/teapot-webservice/internal/platform/logging"
)

// Register wires the hello route into api. Mount api under /api.
//
// The endpoint answers 418 I'm a teapot on success. The status is a
// deliberate placeholder marker, not an error.
func Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "get-hello",
		Method:        http.MethodGet,
		Path:          "/hello",
		Summary:       "Placeholder greeting",
		Description:   "Returns a fixed greeting. Request headers, query and body are ignored.",
		Tags:          []string{"Hello"},
		DefaultStatus: http.StatusTeapot,
	}, getHandler)

	huma.Register(api, huma.Operation{
		OperationID:   "head-hello",
		Method:        http.MethodHead,
		Path:          "/hello",
		Summary:       "Placeholder greeting headers",
		Tags:          []string{"Hello"},
		DefaultStatus: http.StatusTeapot,
	}, headHandler)
}

func getHandler(ctx context.Context, _ *struct{}) (*GetOutput, error) {
	applog.LogInfo(ctx, "hello get", zap.String("path", "/api/hello"))
	return &GetOutput{Body: NewResponse()}, nil
}

func headHandler(ctx context.Context, _ *struct{}) (*HeadOutput, error) {
	applog.LogInfo(ctx, "hello head", zap.String("path", "/api/hello"))
	return NewHeadOutput(), nil
}
