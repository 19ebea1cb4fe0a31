package http1

import (
	"strconv"
	"strings"

	"github.com/grapenut/pennhttp/http"
	"github.com/grapenut/pennhttp/http/method"
	"github.com/grapenut/pennhttp/http/status"
	"github.com/grapenut/pennhttp/internal/route"
	"github.com/grapenut/pennhttp/settings"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

const version = "HTTP/1.1"

// Parser is a line-based http requests parser. The caller is responsible for cutting
// the stream into lines and for feeding each one into the method matching the request
// state. Lines are only peeked at, everything kept is copied, so they may be backed by
// a reused buffer.
type Parser struct {
	settings settings.Request
}

func NewParser(s settings.Request) *Parser {
	return &Parser{
		settings: s,
	}
}

// TryStart parses the request line, e.g. "GET /news?today HTTP/1.1". If the line isn't
// one, status.ErrMalformedRequestLine or status.ErrPathTooLong is returned.
func (p *Parser) TryStart(line []byte) (*http.Request, error) {
	str := uf.B2S(line)
	m := method.Parse(str)
	if m == method.Unknown {
		return nil, status.ErrMalformedRequestLine
	}

	// the method label ends with a space, so there is at least one
	rest := strings.TrimLeft(str[strings.IndexByte(str, ' ')+1:], " \t")
	sp := strings.IndexByte(rest, ' ')
	if sp == -1 {
		return nil, status.ErrMalformedRequestLine
	}

	target, proto := rest[:sp], rest[sp+1:]
	if len(target) >= p.settings.PathLength {
		return nil, status.ErrPathTooLong
	}

	if !strings.HasPrefix(proto, version) {
		return nil, status.ErrMalformedRequestLine
	}

	path, query, _ := strings.Cut(target, "?")

	request := http.NewRequest(p.settings)
	request.Method = m
	request.Path = strings.Clone(route.Trim(path))
	request.Query = p.clip(strings.Clone(query))
	request.Route = p.clip(route.Key(path))

	return request, nil
}

// ConsumeHeaderLine keeps the raw header line and picks up Content-Length and
// Content-Type. Lines without a colon are kept but otherwise ignored. An empty line
// ends the headers, that's up to the caller to notice.
func (p *Parser) ConsumeHeaderLine(request *http.Request, line []byte) {
	request.AppendHeaderLine(line)

	key, value, found := strings.Cut(uf.B2S(line), ":")
	if !found {
		return
	}

	switch {
	case strcomp.EqualFold(key, "content-length"):
		length, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
		if err != nil {
			length = 0
		}

		request.ContentLength = length
	case strcomp.EqualFold(key, "content-type"):
		request.ContentType = p.clip(strings.Clone(strings.TrimSpace(value)))
	}
}

// ConsumeBodyLine keeps the line as a part of the body. The cut bytes are those which
// were received as a part of the line but didn't fit into it, so they are only counted.
// It reports true as soon as the declared Content-Length is reached, after which no more
// lines are taken.
func (p *Parser) ConsumeBodyLine(request *http.Request, line []byte, cut int) (done bool) {
	if request.State > http.Content {
		return true
	}

	request.AppendBody(line)
	request.Received += uint64(len(line) + cut)

	return request.Received >= request.ContentLength
}

func (p *Parser) clip(str string) string {
	if limit := p.settings.PathLength - 1; len(str) > limit {
		return str[:limit]
	}

	return str
}
