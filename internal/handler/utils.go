package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/snnyvrz/library-catalog/internal/middleware"
	"github.com/snnyvrz/library-catalog/internal/view"
)

const (
	actionCreate = "create"
	actionUpdate = "update"
)

// parseID reads the :id route parameter. Missing, malformed and zero
// identifiers all report ok == false.
func parseID(c *gin.Context) (uint, bool) {
	s := c.Param("id")
	if s == "" {
		return 0, false
	}

	id, err := strconv.ParseUint(s, 10, strconv.IntSize)
	if err != nil || id == 0 {
		return 0, false
	}

	return uint(id), true
}

func requestLogger(c *gin.Context) *zerolog.Logger {
	l := log.With().
		Str("request_id", c.GetString(middleware.ContextKeyRequestID)).
		Logger()
	return &l
}

// resolveUpdateConflict decides the response after an update matched no row.
// A record that no longer exists was deleted concurrently and yields 404; a
// record that still exists was modified concurrently and the update fails
// without retrying.
func resolveUpdateConflict(
	c *gin.Context,
	v view.Renderer,
	exists func(ctx context.Context, id uint) (bool, error),
	entity string,
	id uint,
) {
	code := strings.ToUpper(entity)
	logger := requestLogger(c)

	present, err := exists(c.Request.Context(), id)
	if err != nil {
		logger.Error().Err(err).Str("entity", entity).Uint("id", id).Msg("failed to re-check record after conflict")
		v.Error(c, http.StatusInternalServerError,
			code+"_FETCH_FAILED",
			"failed to fetch "+entity,
		)
		return
	}

	if !present {
		logger.Info().Str("entity", entity).Uint("id", id).Msg("record deleted during update")
		v.Error(c, http.StatusNotFound,
			code+"_NOT_FOUND",
			entity+" not found",
		)
		return
	}

	logger.Error().Str("entity", entity).Uint("id", id).Msg("concurrent update conflict")
	v.Error(c, http.StatusConflict,
		code+"_UPDATE_CONFLICT",
		entity+" was modified by another request; reload it and submit again",
	)
}
