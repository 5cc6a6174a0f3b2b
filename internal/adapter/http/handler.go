package httpadapter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"tilegen/internal/maps"
	"tilegen/internal/ports"
	"tilegen/internal/terrain"
	"tilegen/pkg/packing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const tileEncoding = "packed3"

// DefaultMaxTiles caps width*height for maps generated over HTTP when
// Handler.MaxTiles is unset.
const DefaultMaxTiles = 1 << 20

type mapService interface {
	Generate(ctx context.Context, req maps.GenerateRequest) (ports.MapRecord, error)
	Get(ctx context.Context, id int64) (ports.MapRecord, error)
	List(ctx context.Context, limit int) ([]ports.MapRecord, error)
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	Maps     mapService
	Defaults terrain.Config
	Log      *slog.Logger
	// MaxTiles bounds width*height per request; zero means DefaultMaxTiles.
	MaxTiles int
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())
	api := s.Group("/api")
	api.GET("/config", h.config)
	api.GET("/maps", h.list)
	api.POST("/maps", h.generate)
	api.GET("/maps/:id", h.get)
	api.DELETE("/maps/:id", h.delete)
}

type generateRequest struct {
	Name       string               `json:"name"`
	Width      int                  `json:"width"`
	Height     int                  `json:"height"`
	Seed       int64                `json:"seed"`
	Forest     terrain.ForestParams `json:"forest"`
	Water      terrain.WaterParams  `json:"water"`
	HeightMode terrain.HeightMode   `json:"height_mode"`
	TurnPolicy terrain.TurnPolicy   `json:"turn_policy"`
}

type mapResponse struct {
	ID          int64                `json:"id"`
	Name        string               `json:"name"`
	Width       int                  `json:"width"`
	Height      int                  `json:"height"`
	Seed        int64                `json:"seed"`
	Forest      terrain.ForestParams `json:"forest"`
	Water       terrain.WaterParams  `json:"water"`
	HeightMode  terrain.HeightMode   `json:"height_mode"`
	TurnPolicy  terrain.TurnPolicy   `json:"turn_policy"`
	Counts      terrain.TileCounts   `json:"counts"`
	CreatedAt   time.Time            `json:"created_at"`
	Encoding    string               `json:"encoding,omitempty"`
	TilesBase64 string               `json:"tiles_base64,omitempty"`
}

func (h Handler) config(c context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]any{
		"defaults":   h.Defaults,
		"parameters": terrain.Snapshot(h.Defaults),
	})
}

func (h Handler) generate(c context.Context, ctx *app.RequestContext) {
	body := generateRequest{
		Width:      h.Defaults.Width,
		Height:     h.Defaults.Height,
		Forest:     h.Defaults.Forest,
		Water:      h.Defaults.Water,
		HeightMode: h.Defaults.HeightMode,
		TurnPolicy: h.Defaults.TurnPolicy,
	}
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if limit := h.maxTiles(); body.Width > 0 && body.Height > 0 && body.Width > limit/body.Height {
		writeErrorBody(ctx, consts.StatusRequestEntityTooLarge, "map_too_large",
			fmt.Sprintf("%dx%d exceeds the limit of %d tiles", body.Width, body.Height, limit))
		return
	}

	rec, err := h.Maps.Generate(c, maps.GenerateRequest{
		Name: body.Name,
		Config: terrain.Config{
			Width:      body.Width,
			Height:     body.Height,
			Seed:       body.Seed,
			Forest:     body.Forest,
			Water:      body.Water,
			HeightMode: body.HeightMode,
			TurnPolicy: body.TurnPolicy,
		},
	})
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, toMapResponse(rec, true))
}

func (h Handler) get(c context.Context, ctx *app.RequestContext) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", "invalid map id")
		return
	}
	rec, err := h.Maps.Get(c, id)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, toMapResponse(rec, true))
}

func (h Handler) delete(c context.Context, ctx *app.RequestContext) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", "invalid map id")
		return
	}
	if err := h.Maps.Delete(c, id); err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.SetStatusCode(consts.StatusNoContent)
}

func (h Handler) maxTiles() int {
	if h.MaxTiles > 0 {
		return h.MaxTiles
	}
	return DefaultMaxTiles
}

func (h Handler) list(c context.Context, ctx *app.RequestContext) {
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", "invalid limit")
			return
		}
		limit = n
	}
	recs, err := h.Maps.List(c, limit)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	out := make([]mapResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toMapResponse(rec, false))
	}
	ctx.JSON(consts.StatusOK, map[string]any{"maps": out})
}

func toMapResponse(rec ports.MapRecord, withTiles bool) mapResponse {
	resp := mapResponse{
		ID:         rec.ID,
		Name:       rec.Name,
		Width:      rec.Width,
		Height:     rec.Height,
		Seed:       rec.Seed,
		Forest:     rec.Forest,
		Water:      rec.Water,
		HeightMode: rec.HeightMode,
		TurnPolicy: rec.TurnPolicy,
		Counts:     rec.Counts,
		CreatedAt:  rec.CreatedAt,
	}
	if withTiles {
		resp.Encoding = tileEncoding
		resp.TilesBase64 = base64.StdEncoding.EncodeToString(rec.Tiles)
	}
	return resp
}

// DecodeTiles reverses the tiles_base64 field of a map response.
func DecodeTiles(encoded string, width, height int) ([]uint8, error) {
	buf, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}
	return packing.Unpack(buf, width*height)
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func (h Handler) writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, maps.ErrInvalidRequest),
		errors.Is(err, terrain.ErrInvalidDimensions),
		errors.Is(err, terrain.ErrInvalidParams):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, terrain.ErrResourceExhausted):
		writeErrorBody(ctx, consts.StatusRequestEntityTooLarge, "map_too_large", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	default:
		if h.Log != nil {
			h.Log.Error("request failed", "path", string(ctx.Path()), "err", err)
		}
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
