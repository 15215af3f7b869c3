package web

import (
	"context"
	_ "embed"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/gin-gonic/gin"
)

//go:embed openapi.yaml
var openapiDocument []byte

func newAPIRouter() (routers.Router, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(openapiDocument)
	if err != nil {
		return nil, err
	}

	if err := doc.Validate(loader.Context); err != nil {
		return nil, err
	}

	return legacy.NewRouter(doc)
}

// ValidateRequests checks request bodies and parameters against the embedded
// API document. Routes the document does not know pass through untouched.
func ValidateRequests(apiRouter routers.Router) gin.HandlerFunc {
	return func(c *gin.Context) {
		route, pathParams, err := apiRouter.FindRoute(c.Request)
		if err != nil {
			c.Next()
			return
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    c.Request,
			PathParams: pathParams,
			Route:      route,
		}

		if err := openapi3filter.ValidateRequest(context.Background(), input); err != nil {
			HandleError(c, http.StatusBadRequest, "Request does not match the API contract", err)
			return
		}

		c.Next()
	}
}
