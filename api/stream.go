package api

import (
	"context"
	"io"

	"github.com/hungerhelper/hungerhelper/geo"
	"google.golang.org/genai"
)

// SourceKind distinguishes where a citation was grounded.
type SourceKind string

const (
	SourceWeb  SourceKind = "web"
	SourceMaps SourceKind = "maps"
)

// Source is one citation backing a claim in a reply.
type Source struct {
	URI   string
	Title string
	Kind  SourceKind
}

// Progress-step labels emitted when the service reports tool usage.
const (
	StepWebSearch  = "Searching the web for latest info..."
	StepMapsLookup = "Checking locations and routes..."
)

// StreamChunk is one incremental unit of a streamed reply. Any combination
// of fields may be set; a chunk with none of them is a no-op for the
// consumer. Sources only arrive on the terminal chunk, which also has Final
// set.
type StreamChunk struct {
	Text    string
	Steps   []string
	Sources []Source
	Final   bool
}

// Empty reports whether the chunk carries nothing to merge.
func (c StreamChunk) Empty() bool {
	return c.Text == "" && len(c.Steps) == 0 && c.Sources == nil
}

// StreamProvider is the capability boundary consumed by the chat core: a
// provider of an asynchronous chunk sequence for a query, plus speech
// synthesis for a finished reply. *Client implements it; tests substitute
// scripted fakes.
type StreamProvider interface {
	GenerateStream(ctx context.Context, query string, loc *geo.Coordinates) (*Stream, error)
	SynthesizeSpeech(ctx context.Context, text string) (string, error)
}

var _ StreamProvider = (*Client)(nil)

type streamItem struct {
	chunk StreamChunk
	err   error
}

// Stream delivers chunks in service order. Recv blocks until the next chunk
// is available and returns io.EOF once the sequence is exhausted.
type Stream struct {
	items chan streamItem
}

func newStream(buf int) *Stream {
	return &Stream{items: make(chan streamItem, buf)}
}

// Recv returns the next chunk, the error that ended the stream, or io.EOF
// after the terminal chunk has been consumed.
func (s *Stream) Recv() (StreamChunk, error) {
	item, ok := <-s.items
	if !ok {
		return StreamChunk{}, io.EOF
	}
	return item.chunk, item.err
}

// NewScriptedStream builds a stream that replays chunks and then either
// fails with err or ends normally. It exists so orchestrator and merge tests
// can run against a deterministic sequence with no network involved.
func NewScriptedStream(chunks []StreamChunk, err error) *Stream {
	s := newStream(len(chunks) + 1)
	for _, c := range chunks {
		s.items <- streamItem{chunk: c}
	}
	if err != nil {
		s.items <- streamItem{err: err}
	}
	close(s.items)
	return s
}

// GenerateStream opens one grounded completion request for the user's query
// and returns the resulting chunk stream. Chunks arrive in service order;
// the terminal chunk carries the citation list parsed from the last
// response's grounding metadata. The context governs the whole exchange.
func (c *Client) GenerateStream(ctx context.Context, query string, loc *geo.Coordinates) (*Stream, error) {
	if c.genai == nil {
		if err := c.Init(ctx); err != nil {
			return nil, err
		}
	}

	prompt := BuildPrompt(PromptContext{
		Query:     query,
		Location:  loc,
		Providers: c.ProviderList,
	})

	cfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
			{GoogleMaps: &genai.GoogleMaps{}},
		},
	}
	if loc != nil {
		cfg.ToolConfig = &genai.ToolConfig{
			RetrievalConfig: &genai.RetrievalConfig{
				LatLng: &genai.LatLng{
					Latitude:  genai.Ptr(loc.Latitude),
					Longitude: genai.Ptr(loc.Longitude),
				},
			},
		}
	}

	s := newStream(8)
	go func() {
		defer close(s.items)
		var last *genai.GenerateContentResponse
		for resp, err := range c.genai.Models.GenerateContentStream(ctx, c.model(), genai.Text(prompt), cfg) {
			if err != nil {
				s.items <- streamItem{err: unwrapAPIError(err)}
				return
			}
			last = resp
			if chunk := ExtractChunk(resp); !chunk.Empty() {
				s.items <- streamItem{chunk: chunk}
			}
		}
		s.items <- streamItem{chunk: StreamChunk{Sources: ParseSources(last), Final: true}}
	}()
	return s, nil
}

// ExtractChunk converts one streamed response into the chunk the merge
// engine understands: concatenated text parts plus a step label per distinct
// grounding-tool family the service reports.
func ExtractChunk(resp *genai.GenerateContentResponse) StreamChunk {
	var out StreamChunk
	if resp == nil || len(resp.Candidates) == 0 {
		return out
	}
	cand := resp.Candidates[0]
	if cand.Content != nil {
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				out.Text += part.Text
			}
		}
	}
	if gm := cand.GroundingMetadata; gm != nil {
		var web, maps bool
		for _, gc := range gm.GroundingChunks {
			if gc.Web != nil {
				web = true
			}
			if gc.Maps != nil {
				maps = true
			}
		}
		if web {
			out.Steps = append(out.Steps, StepWebSearch)
		}
		if maps {
			out.Steps = append(out.Steps, StepMapsLookup)
		}
	}
	return out
}

// ParseSources extracts the citation list from a response's grounding
// metadata. The result is never nil: an absent list means "no citations",
// which finalization writes as an empty slice.
func ParseSources(resp *genai.GenerateContentResponse) []Source {
	sources := []Source{}
	if resp == nil || len(resp.Candidates) == 0 {
		return sources
	}
	gm := resp.Candidates[0].GroundingMetadata
	if gm == nil {
		return sources
	}
	for _, gc := range gm.GroundingChunks {
		switch {
		case gc.Web != nil:
			title := gc.Web.Title
			if title == "" {
				title = gc.Web.URI
			}
			sources = append(sources, Source{URI: gc.Web.URI, Title: title, Kind: SourceWeb})
		case gc.Maps != nil:
			title := gc.Maps.Title
			if title == "" {
				title = "Map View"
			}
			sources = append(sources, Source{URI: gc.Maps.URI, Title: title, Kind: SourceMaps})
		}
	}
	return sources
}
