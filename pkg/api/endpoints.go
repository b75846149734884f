package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/scriptorivm/orthograph/pkg/kit"
	"github.com/scriptorivm/orthograph/pkg/latin"
)

// Provider returns the pipeline currently in service. The server swaps
// pipelines atomically on ruleset reload, so transports resolve it per
// request instead of holding one.
type Provider func() *latin.Pipeline

// Shared request/response types used by both HTTP and MCP transports.

const maxBatchTexts = 100

type normalizeRequest struct {
	Text  string `json:"text"`
	Mode  string `json:"mode,omitempty"` // full (default), uv, vu, longs
	Pass2 *bool  `json:"pass2,omitempty"`
}

type normalizeResponse struct {
	Normalized string `json:"normalized"`
	Mode       string `json:"mode"`
	Changed    bool   `json:"changed"`
}

type batchRequest struct {
	Texts []string `json:"texts"`
	Mode  string   `json:"mode,omitempty"`
	Pass2 *bool    `json:"pass2,omitempty"`
}

type batchResponse struct {
	Results []normalizeResponse `json:"results"`
}

type explainRequest struct {
	Text  string `json:"text"`
	Mode  string `json:"mode,omitempty"` // full (default), uv, longs
	Pass2 *bool  `json:"pass2,omitempty"`
}

type rulesetResponse struct {
	ID           string  `json:"id"`
	Version      string  `json:"version"`
	Source       string  `json:"source"`
	License      string  `json:"license"`
	CorpusWords  uint64  `json:"corpus_words,omitempty"`
	VocalicWords int     `json:"vocalic_words"`
	VocalicStems int     `json:"vocalic_stems"`
	Onsets       int     `json:"onset_exceptions"`
	Pass1Rules   int     `json:"pass1_rules"`
	Allowlist    int     `json:"allowlist"`
	Threshold    float64 `json:"threshold"`
	Pass2Default bool    `json:"pass2_default"`
	Bigrams      int     `json:"bigrams"`
	Trigrams     int     `json:"trigrams"`
	Quadgrams    int     `json:"quadgrams"`
}

// pipelineFor resolves the serving pipeline, applying a per-request pass 2
// override when present.
func pipelineFor(pv Provider, pass2 *bool) *latin.Pipeline {
	p := pv()
	if pass2 != nil {
		p = p.Pass2Variant(*pass2)
	}
	return p
}

func normalizeMode(p *latin.Pipeline, mode, text string) (string, error) {
	switch mode {
	case "", "full":
		return p.Normalize(text), nil
	case "uv":
		return p.NormalizeUV(text), nil
	case "vu":
		return p.NormalizeVU(text), nil
	case "longs":
		return p.CorrectLongS(text), nil
	default:
		return "", fmt.Errorf("unknown mode %q (want full, uv, vu or longs)", mode)
	}
}

func explainMode(p *latin.Pipeline, mode, text string) (*latin.Result, error) {
	switch mode {
	case "", "full":
		return p.Explain(text), nil
	case "uv":
		return p.ExplainUV(text), nil
	case "longs":
		return p.ExplainLongS(text), nil
	default:
		return nil, fmt.Errorf("unknown explain mode %q (want full, uv or longs)", mode)
	}
}

func canonicalMode(mode string) string {
	if mode == "" {
		return "full"
	}
	return mode
}

// endpoints bundles the wrapped kit.Endpoints both transports dispatch to.
type endpoints struct {
	normalize   kit.Endpoint
	batch       kit.Endpoint
	explain     kit.Endpoint
	backend     kit.Endpoint
	rulesetInfo kit.Endpoint
	stats       kit.Endpoint
}

func newEndpoints(pv Provider, logger *slog.Logger) *endpoints {
	wrap := func(name string, ep kit.Endpoint) kit.Endpoint {
		return kit.Chain(kit.RequestID(), kit.Logging(logger, name))(ep)
	}
	return &endpoints{
		normalize:   wrap("normalize", normalizeEndpoint(pv)),
		batch:       wrap("normalize_batch", batchEndpoint(pv)),
		explain:     wrap("explain", explainEndpoint(pv)),
		backend:     wrap("backend", backendEndpoint(pv)),
		rulesetInfo: wrap("ruleset", rulesetEndpoint(pv)),
		stats:       wrap("stats", statsEndpoint(pv)),
	}
}

func normalizeEndpoint(pv Provider) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*normalizeRequest)
		p := pipelineFor(pv, req.Pass2)
		out, err := normalizeMode(p, req.Mode, req.Text)
		if err != nil {
			return nil, err
		}
		return normalizeResponse{
			Normalized: out,
			Mode:       canonicalMode(req.Mode),
			Changed:    out != req.Text,
		}, nil
	}
}

func batchEndpoint(pv Provider) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*batchRequest)
		if len(req.Texts) == 0 {
			return nil, fmt.Errorf("texts array is empty")
		}
		if len(req.Texts) > maxBatchTexts {
			return nil, fmt.Errorf("too many texts (max %d, got %d)", maxBatchTexts, len(req.Texts))
		}

		p := pipelineFor(pv, req.Pass2)
		results := make([]normalizeResponse, len(req.Texts))
		for i, text := range req.Texts {
			out, err := normalizeMode(p, req.Mode, text)
			if err != nil {
				return nil, err
			}
			results[i] = normalizeResponse{
				Normalized: out,
				Mode:       canonicalMode(req.Mode),
				Changed:    out != text,
			}
		}
		return batchResponse{Results: results}, nil
	}
}

func explainEndpoint(pv Provider) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*explainRequest)
		return explainMode(pipelineFor(pv, req.Pass2), req.Mode, req.Text)
	}
}

func backendEndpoint(pv Provider) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		return pv().Backend(), nil
	}
}

func rulesetEndpoint(pv Provider) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		p := pv()
		rs := p.Ruleset()
		bi, tri, quad := rs.NGrams.Sizes()
		return rulesetResponse{
			ID:           rs.Manifest.ID,
			Version:      rs.Manifest.Version,
			Source:       rs.Manifest.Source,
			License:      rs.Manifest.License,
			CorpusWords:  rs.Manifest.Words,
			VocalicWords: len(rs.UV.VocalicWords),
			VocalicStems: len(rs.UV.VocalicStems),
			Onsets:       len(rs.UV.OnsetExceptions),
			Pass1Rules:   len(rs.LongS.Pass1),
			Allowlist:    rs.LongS.AllowlistSize(),
			Threshold:    rs.LongS.Threshold,
			Pass2Default: p.Pass2(),
			Bigrams:      bi,
			Trigrams:     tri,
			Quadgrams:    quad,
		}, nil
	}
}

func statsEndpoint(pv Provider) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		return pv().Stats(), nil
	}
}
