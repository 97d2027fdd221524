// Package web exposes the crawler trigger over HTTP.
//
// @title           Peregrine Trigger API
// @version         0.1
// @description     Starts and describes the Peregrine Glue crawler.
// @BasePath        /api/v1
package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/aws-sdk-go-v2/service/glue"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/gin-swagger/swaggerFiles"

	"github.com/westat/peregrine/pkg/crawler"
	"github.com/westat/peregrine/pkg/metrics"
	_ "github.com/westat/peregrine/pkg/web/docs"
	"github.com/westat/peregrine/pkg/web/model"
)

// Starter is satisfied by *trigger.Invoker.
type Starter interface {
	Handle(ctx context.Context, trigger json.RawMessage) (*glue.StartCrawlerOutput, error)
	CrawlerName() string
}

// Describer is satisfied by *crawler.Describer.
type Describer interface {
	Describe(ctx context.Context) (crawler.Status, error)
}

type server struct {
	starter   Starter
	describer Describer
	logger    logrus.FieldLogger
}

// NewRouter builds the gin engine serving the v1 API, health and metrics endpoints.
func NewRouter(starter Starter, describer Describer, logger logrus.FieldLogger) *gin.Engine {
	metrics.Init()
	s := &server{starter: starter, describer: describer, logger: logger}

	r := gin.New()
	r.Use(s.observe, gin.Recovery())

	v1 := r.Group("/api/v1")
	{
		invocations := v1.Group("/invocations")
		{
			invocations.POST("", s.invocationsPost)
		}
		v1.GET("/crawler", s.crawlerGet)
	}
	r.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, model.HealthStatus{Status: "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return r
}

func (s *server) observe(ctx *gin.Context) {
	ctx.Next()
	route := ctx.FullPath()
	if route == "" {
		route = "unmatched"
	}
	metrics.ObserveHTTPRequest(ctx.Request.Method, route, ctx.Writer.Status())
	s.logger.WithFields(logrus.Fields{
		"method": ctx.Request.Method,
		"route":  route,
		"status": ctx.Writer.Status(),
	}).Debug("http request")
}

// invocationsPost godoc
// @Summary      Start the crawler
// @Description  Creates an invocation that asks Glue to start the configured crawler. Inputs are passed through unread.
// @Tags         invocations
// @Accept       json
// @Param        invocation  body  model.CreateInvocation  false  "Invocation"
// @Produce      json
// @Success      200  {object}  model.CreateInvocationSuccess
// @Failure      400  {object}  HTTPError
// @Failure      404  {object}  HTTPError
// @Failure      409  {object}  HTTPError
// @Failure      500  {object}  HTTPError
// @Failure      502  {object}  HTTPError
// @Router       /invocations [post]
func (s *server) invocationsPost(ctx *gin.Context) {
	var payload model.CreateInvocation
	if err := ctx.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		NewError(ctx, http.StatusBadRequest, err)
		return
	}
	if payload.ID == "" {
		payload.ID = uuid.New().String()
	}

	out, err := s.starter.Handle(ctx.Request.Context(), payload.Inputs)
	if err != nil {
		NewError(ctx, statusForTrigger(err), err)
		return
	}

	success := model.CreateInvocationSuccess{ID: payload.ID, Crawler: s.starter.CrawlerName()}
	if requestID, ok := awsmiddleware.GetRequestIDMetadata(out.ResultMetadata); ok {
		success.RequestID = requestID
	}
	ctx.JSON(http.StatusOK, success)
}

// crawlerGet godoc
// @Summary      Describe the crawler
// @Tags         crawler
// @Produce      json
// @Success      200  {object}  crawler.Status
// @Failure      502  {object}  HTTPError
// @Router       /crawler [get]
func (s *server) crawlerGet(ctx *gin.Context) {
	status, err := s.describer.Describe(ctx.Request.Context())
	if err != nil {
		s.logger.WithError(err).Error("describe crawler failed")
		NewError(ctx, http.StatusBadGateway, err)
		return
	}
	ctx.JSON(http.StatusOK, status)
}
