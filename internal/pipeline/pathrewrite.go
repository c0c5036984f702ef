package pipeline

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-api2html/internal/fileutil"
)

// ErrReadImage indicates an image could not be read for inlining.
var ErrReadImage = errors.New("cannot read image")

// MaxInlineImageSize caps the size of a single inlined image.
const MaxInlineImageSize = 10 << 20

// InlineImages replaces relative img[src] paths with data: URIs read from
// baseDir. Images outside baseDir, missing files and oversized files keep
// their original src. If baseDir is empty, returns the HTML unchanged.
//
// Does NOT rewrite:
//   - a[href] (links stay links)
//   - srcset attributes
//   - absolute paths or URLs
func InlineImages(htmlContent, baseDir string) (string, error) {
	if baseDir == "" || !strings.Contains(strings.ToLower(htmlContent), "<img") {
		return htmlContent, nil
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	inlineNode(doc, absBaseDir)

	return renderHTML(doc, isFragment)
}

// DataURI reads a file and encodes it as a data: URI.
func DataURI(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadImage, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrReadImage, path)
	}
	if info.Size() > MaxInlineImageSize {
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrReadImage, path, MaxInlineImageSize)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadImage, err)
	}

	mediaType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if mediaType == "" {
		mediaType = http.DetectContentType(data)
	}
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node, whether it was a fragment, and any error.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.TrimSpace(content)

	if strings.HasPrefix(strings.ToLower(trimmed), "<!doctype") ||
		strings.HasPrefix(strings.ToLower(trimmed), "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	return container, true, nil
}

// renderHTML renders the document back to string.
// For fragments, only renders the children (avoids adding <html><body> wrapper).
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// inlineNode traverses the DOM and inlines relative images.
func inlineNode(n *html.Node, baseDir string) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Img {
		inlineAttr(n, "src", baseDir)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		inlineNode(c, baseDir)
	}
}

// inlineAttr replaces one attribute with a data: URI when it names a
// readable file under baseDir.
func inlineAttr(n *html.Node, attrName, baseDir string) {
	for i, attr := range n.Attr {
		if attr.Key != attrName || !isRelativePath(attr.Val) {
			continue
		}

		rel, err := url.PathUnescape(attr.Val)
		if err != nil {
			rel = attr.Val
		}
		absPath := filepath.Join(baseDir, filepath.FromSlash(rel))

		// Security: validate path is under baseDir (prevent traversal)
		if !isPathUnderDir(absPath, baseDir) {
			continue
		}

		uri, err := DataURI(absPath)
		if err != nil {
			continue
		}
		n.Attr[i].Val = uri
	}
}

// isRelativePath returns true if the path should be inlined.
func isRelativePath(path string) bool {
	if path == "" || fileutil.IsRemote(path) || strings.HasPrefix(path, "file://") {
		return false
	}
	return !filepath.IsAbs(path) && !strings.HasPrefix(path, "/")
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}

	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}
