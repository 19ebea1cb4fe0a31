package http1

import (
	"html"
	"strconv"
	"strings"

	"github.com/grapenut/pennhttp/http"
	"github.com/grapenut/pennhttp/http/mime"
	"github.com/grapenut/pennhttp/http/status"
	"github.com/grapenut/pennhttp/settings"
)

const (
	contentType = "Content-Type: "
	pragma      = "Pragma: "
	connection  = "Connection: "
	xRoute      = "X-Route: "

	documentType = "text/html; charset=iso-8859-1"
)

var (
	protocol     = []byte("HTTP/1.1 ")
	crlf         = []byte("\r\n")
	wrapperClose = []byte("</BODY></HTML>\r\n")
)

// Serializer renders responses into a buffer it owns. Every returned slice is valid
// until the next call only.
type Serializer struct {
	buff []byte
	site settings.Site
}

func NewSerializer(buff []byte, site settings.Site) *Serializer {
	return &Serializer{
		buff: buff[:0],
		site: site,
	}
}

// Status renders a whole self-contained HTML document reporting the status code. The
// route is echoed in the X-Route header. Unknown codes render nothing.
func (d *Serializer) Status(route string, code status.Code, message string) []byte {
	text, ok := status.Text(code)
	if !ok {
		return nil
	}

	d.clear()
	d.renderResponseLine(code, text)
	d.renderDocumentHeaders()
	d.renderKnownHeader(xRoute, route)
	d.crlf()
	d.buff = append(d.buff, "<!DOCTYPE html>\r\n<HTML><HEAD><TITLE>"...)
	d.buff = strconv.AppendUint(d.buff, uint64(code), 10)
	d.sp()
	d.buff = append(d.buff, text...)
	d.buff = append(d.buff, "</TITLE></HEAD><BODY><p>"...)
	d.buff = append(d.buff, html.EscapeString(message)...)
	d.buff = append(d.buff, "</p>\r\n</BODY></HTML>\r\n"...)

	return d.buff
}

// DefaultPage renders the page for browsers knocking at a server which doesn't serve
// HTTP. If the site has a web address, the page redirects there.
func (d *Serializer) DefaultPage() []byte {
	name := html.EscapeString(d.site.Name)
	url := html.EscapeString(d.site.URL)
	hasURL := strings.HasPrefix(d.site.URL, "http")

	d.clear()
	d.renderResponseLine(status.OK, "OK")
	d.renderDocumentHeaders()
	d.crlf()
	d.buff = append(d.buff, "<!DOCTYPE html>\r\n<HTML><HEAD><TITLE>Welcome to "...)
	d.buff = append(d.buff, name...)
	d.buff = append(d.buff, "!</TITLE>"...)
	if hasURL {
		d.buff = append(d.buff, `<meta http-equiv="refresh" content="5; url=`...)
		d.buff = append(d.buff, url...)
		d.buff = append(d.buff, `">`...)
	}

	d.buff = append(d.buff, "</HEAD><BODY><h1>Oops!</h1>"...)
	if hasURL {
		d.buff = append(d.buff, `<p>You've come here by accident! Please click <a href="`...)
		d.buff = append(d.buff, url...)
		d.buff = append(d.buff, `">`...)
		d.buff = append(d.buff, url...)
		d.buff = append(d.buff, "</a> to go to the website for "...)
		d.buff = append(d.buff, name...)
		d.buff = append(d.buff, " if your browser doesn't redirect you in a few seconds.</p>"...)
	} else {
		d.buff = append(d.buff, "<p>You've come here by accident! Try using a MUSH client, not a browser, to connect to "...)
		d.buff = append(d.buff, name...)
		d.buff = append(d.buff, ".</p>"...)
	}

	d.buff = append(d.buff, "</BODY></HTML>\r\n"...)

	return d.buff
}

// Body renders a piece of the streamed response. The head (status line, headers and,
// if asked, the opening HTML wrapper) is rendered only if head is set, which must be
// the case exactly once per response. Non-empty content is terminated by CRLF. There's
// no Content-Length, the response is delimited by closing the connection.
func (d *Serializer) Body(request *http.Request, content string, head bool) []byte {
	d.clear()

	if head {
		d.renderHead(request)
	}

	if len(content) > 0 {
		d.buff = append(d.buff, content...)
		d.crlf()
	}

	return d.buff
}

// WrapperClose renders the closing HTML wrapper if the response was started with one.
func (d *Serializer) WrapperClose(request *http.Request) []byte {
	if request.State != http.Started || !wraps(request) {
		return nil
	}

	return wrapperClose
}

func (d *Serializer) renderHead(request *http.Request) {
	text, _ := status.Text(request.Status)
	d.renderResponseLine(request.Status, text)
	d.buff = append(d.buff, request.ResponseHeaders()...)
	d.renderKnownHeader(contentType, request.ContentTypeHeader)
	d.crlf()

	if wraps(request) {
		d.buff = append(d.buff, "<!DOCTYPE html>\r\n<HTML><HEAD>\r\n<TITLE>"...)
		d.buff = append(d.buff, html.EscapeString(d.site.Name)...)
		d.buff = append(d.buff, "</TITLE>\r\n</HEAD><BODY>\r\n"...)
	}
}

func (d *Serializer) renderResponseLine(code status.Code, text string) {
	d.buff = append(d.buff, protocol...)
	d.buff = strconv.AppendUint(d.buff, uint64(code), 10)
	d.sp()
	d.buff = append(d.buff, text...)
	d.crlf()
}

func (d *Serializer) renderDocumentHeaders() {
	d.renderKnownHeader(contentType, documentType)
	d.renderKnownHeader(pragma, "no-cache")
	d.renderKnownHeader(connection, "Close")
}

func (d *Serializer) renderKnownHeader(key, value string) {
	d.buff = append(d.buff, key...)
	d.buff = append(d.buff, value...)
	d.crlf()
}

func (d *Serializer) sp() {
	d.buff = append(d.buff, ' ')
}

func (d *Serializer) crlf() {
	d.buff = append(d.buff, crlf...)
}

func (d *Serializer) clear() {
	d.buff = d.buff[:0]
}

func wraps(request *http.Request) bool {
	return request.WrapHTML && mime.IsHTML(request.ContentTypeHeader)
}
