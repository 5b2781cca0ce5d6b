package submission

import (
	"bytes"
	"errors"

	"github.com/akeren/consent-intake/config/router"
	apperrors "github.com/akeren/consent-intake/pkg/errors"
	"github.com/gin-gonic/gin/binding"
)

var errNullBody = errors.New("request body is null")

func NewSubmissionController(service SubmissionService) *router.RESTController {
	return router.NewRESTController(
		"SubmissionController",
		"/api",
		func(rs *router.RouterService, c *router.RESTController) {
			recorder := newOutcomeRecorder(rs.MetricsRegisterer())

			rs.AddPostHandler(c, "/submit", submitHandler(service, recorder))
		},
	)
}

func submitHandler(service SubmissionService, recorder outcomeRecorder) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req SubmitRequest

		if err := bindSubmitRequest(ctx, &req); err != nil {
			logger.Error("Failed to bind request", "error", err)
			recorder.Record(outcomeMalformed)

			return router.BadRequestResult(MsgInvalidPayload, nil)
		}

		receipt, err := service.Submit(ctx.Request.Context(), &req)
		recorder.Record(outcomeFor(err))

		if err != nil {
			var details any
			if d := apperrors.GetDetails(err); len(d) > 0 {
				details = d
			}

			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				details,
			)
		}

		logger.Debug("Submission accepted", "submission_id", receipt.ID)

		return router.OKResult(nil, MsgReceived)
	}
}

// bindSubmitRequest decodes the body into req. A literal null is rejected
// since it carries no object to read fields from.
func bindSubmitRequest(ctx *router.RequestContext, req *SubmitRequest) error {
	raw, err := ctx.GetRawData()
	if err != nil {
		return err
	}

	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return errNullBody
	}

	return binding.JSON.BindBody(raw, req)
}
