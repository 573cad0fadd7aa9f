package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/yourusername/open-stdnum-gateway/pkg/identifier"
	"github.com/yourusername/open-stdnum-gateway/pkg/isbn"
	"github.com/yourusername/open-stdnum-gateway/pkg/marc"
	"github.com/yourusername/open-stdnum-gateway/pkg/stdnum"
)

// maxMARCBytes bounds an uploaded record; ISO 2709 caps one at 99999 bytes.
const maxMARCBytes = 1 << 20

// IdentifierResponse wraps an inspection result
type IdentifierResponse struct {
	Status string            `json:"status"`
	Data   identifier.Result `json:"data"`
}

// NormalizeRequest names the identifier to normalize; an empty kind is detected
type NormalizeRequest struct {
	Kind       string `json:"kind"`
	Identifier string `json:"identifier" binding:"required"`
}

type NormalizeResponse struct {
	Status     string          `json:"status"`
	Kind       identifier.Kind `json:"kind"`
	Normalized string          `json:"normalized"`
}

// ConvertRequest asks for the 10 or 13 character form of an ISBN
type ConvertRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	To         string `json:"to" binding:"required,oneof=10 13"`
}

type ConvertResponse struct {
	Status string `json:"status"`
	ISBN   string `json:"isbn"`
}

// MARCResponse lists the standard numbers found in a record
type MARCResponse struct {
	Status      string           `json:"status"`
	RecordID    string           `json:"record_id"`
	Title       string           `json:"title"`
	Profile     string           `json:"profile"`
	Identifiers []marc.Extracted `json:"identifiers"`
}

// inspect wraps identifier.Inspect in a span and records the lookup.
func (g *Gateway) inspect(ctx context.Context, kind identifier.Kind, raw string) identifier.Result {
	_, span := g.tracer.Start(ctx, "identifier.Inspect")
	defer span.End()

	start := time.Now()
	res := identifier.Inspect(kind, raw)
	g.metrics.ObserveLookup(string(res.Kind), outcome(res.Valid), time.Since(start))

	span.SetAttributes(
		attribute.String("stdnum.kind", string(res.Kind)),
		attribute.Bool("stdnum.valid", res.Valid),
	)
	return res
}

func outcome(valid bool) string {
	if valid {
		return "valid"
	}
	return "invalid"
}

// getIdentifier godoc
// @Summary      Inspect an identifier
// @Description  Validates an ISBN, ISSN or LCCN and reports its normalized form, check character and ISBN conversions. Invalid identifiers are reported with valid=false.
// @Tags         identifiers
// @Produce      json
// @Param        kind  path   string  true  "isbn, issn, lccn or auto"
// @Param        id    query  string  true  "Identifier as entered"
// @Success      200  {object}  IdentifierResponse
// @Failure      400  {object}  APIError
// @Failure      401  {object}  APIError
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /identifiers/{kind} [get]
func (g *Gateway) getIdentifier(c *gin.Context) {
	kind, err := identifier.ParseKind(c.Param("kind"))
	if err != nil {
		AbortWithError(c, http.StatusBadRequest, "Unknown identifier kind", err)
		return
	}
	raw := c.Query("id")
	if raw == "" {
		AbortWithError(c, http.StatusBadRequest, "Missing id query parameter", nil)
		return
	}

	c.JSON(http.StatusOK, IdentifierResponse{Status: "success", Data: g.inspect(c.Request.Context(), kind, raw)})
}

// normalizeIdentifier godoc
// @Summary      Normalize an identifier
// @Description  Returns the canonical form: ISBN-13 for ISBNs, eight characters for ISSNs and the LoC normalized form for LCCNs.
// @Tags         identifiers
// @Accept       json
// @Produce      json
// @Param        request  body  NormalizeRequest  true  "Identifier"
// @Success      200  {object}  NormalizeResponse
// @Failure      400  {object}  APIError
// @Failure      422  {object}  APIError
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /identifiers/normalize [post]
func (g *Gateway) normalizeIdentifier(c *gin.Context) {
	var req NormalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	kind, err := identifier.ParseKind(req.Kind)
	if err != nil {
		AbortWithError(c, http.StatusBadRequest, "Unknown identifier kind", err)
		return
	}

	res := g.inspect(c.Request.Context(), kind, req.Identifier)
	if !res.Valid {
		AbortWithError(c, http.StatusUnprocessableEntity, "Identifier is not valid", errors.New(res.Error))
		return
	}
	c.JSON(http.StatusOK, NormalizeResponse{Status: "success", Kind: res.Kind, Normalized: res.Normalized})
}

// convertISBN godoc
// @Summary      Convert an ISBN
// @Description  Converts between ISBN-10 and ISBN-13. ISBN-13s with the 979 prefix have no ISBN-10 form.
// @Tags         isbn
// @Accept       json
// @Produce      json
// @Param        request  body  ConvertRequest  true  "ISBN and target form"
// @Success      200  {object}  ConvertResponse
// @Failure      400  {object}  APIError
// @Failure      422  {object}  APIError
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /isbn/convert [post]
func (g *Gateway) convertISBN(c *gin.Context) {
	var req ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	_, span := g.tracer.Start(c.Request.Context(), "isbn.Convert")
	defer span.End()
	span.SetAttributes(attribute.String("isbn.to", req.To))

	start := time.Now()
	var out string
	var err error
	if req.To == "10" {
		out, err = isbn.ConvertTo10(req.Identifier)
	} else {
		out, err = isbn.ConvertTo13(req.Identifier)
	}
	g.metrics.ObserveLookup(string(identifier.KindISBN), outcome(err == nil), time.Since(start))

	switch {
	case errors.Is(err, isbn.ErrNoISBN10):
		span.SetStatus(codes.Error, err.Error())
		AbortWithError(c, http.StatusUnprocessableEntity, "ISBN has no ISBN-10 form", err)
		return
	case errors.Is(err, stdnum.ErrInvalid):
		AbortWithError(c, http.StatusUnprocessableEntity, "Identifier is not a valid ISBN", err)
		return
	case err != nil:
		AbortWithError(c, http.StatusInternalServerError, "Conversion failed", err)
		return
	}
	c.JSON(http.StatusOK, ConvertResponse{Status: "success", ISBN: out})
}

// extractMARCIdentifiers godoc
// @Summary      Extract identifiers from a MARC record
// @Description  Parses an ISO 2709 or MARC-in-JSON record and inspects every LCCN, ISBN and ISSN subfield $a and $z.
// @Tags         marc
// @Accept       application/marc
// @Produce      json
// @Param        profile  query  string  false  "marc21, unimarc or cnmarc"
// @Success      200  {object}  MARCResponse
// @Failure      400  {object}  APIError
// @Failure      422  {object}  APIError
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /marc/identifiers [post]
func (g *Gateway) extractMARCIdentifiers(c *gin.Context) {
	profile := g.profile
	if name := c.Query("profile"); name != "" {
		p, err := marc.ProfileByName(name)
		if err != nil {
			AbortWithError(c, http.StatusBadRequest, "Unknown MARC profile", err)
			return
		}
		profile = p
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxMARCBytes))
	if err != nil {
		AbortWithError(c, http.StatusBadRequest, "Failed to read record", err)
		return
	}
	if len(data) == 0 {
		AbortWithError(c, http.StatusBadRequest, "Empty MARC record", nil)
		return
	}

	_, span := g.tracer.Start(c.Request.Context(), "marc.ExtractIdentifiers")
	defer span.End()
	span.SetAttributes(attribute.String("marc.profile", profile.Name), attribute.Int("marc.bytes", len(data)))

	rec, err := marc.ParseMARC(data)
	if err != nil {
		g.metrics.IncrementMARCRecord("rejected")
		span.SetStatus(codes.Error, err.Error())
		AbortWithError(c, http.StatusUnprocessableEntity, "Malformed MARC record", err)
		return
	}
	g.metrics.IncrementMARCRecord("parsed")

	ids := marc.ExtractIdentifiers(rec, profile)
	for _, id := range ids {
		g.metrics.ObserveLookup(string(id.Kind), outcome(id.Valid), 0)
	}
	if ids == nil {
		ids = []marc.Extracted{}
	}

	c.JSON(http.StatusOK, MARCResponse{
		Status:      "success",
		RecordID:    rec.RecordID,
		Title:       rec.Title(profile),
		Profile:     profile.Name,
		Identifiers: ids,
	})
}
