package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blogPage = `
<html>
	<head><title>ignored</title><style>.x{}</style></head>
	<body>
		<nav>Home | Blog</nav>
		<h1 class="mb-4 mt-0 lg:pr-4 ">Widget Installation Guide</h1>
		<div class="pb-14 relative article-content">
			<p>Install the   widget in five steps.</p>
			<script>track();</script>
			<p>Then configure it.</p>
		</div>
		<footer>Footer</footer>
	</body>
</html>`

func TestSelectorStrategy_Defaults(t *testing.T) {
	s := DefaultSelectorStrategy()
	assert.Equal(t, DefaultHeadingSelector, s.HeadingSelector)
	assert.Equal(t, DefaultBodySelector, s.BodySelector)

	heading, body, err := s.Extract(blogPage)
	require.NoError(t, err)
	assert.Equal(t, "widget installation guide", NormalizeText(heading))
	assert.Equal(t, "install the widget in five steps. then configure it.", NormalizeText(body))
}

func TestSelectorStrategy_CustomSelectors(t *testing.T) {
	html := `<html><body>
		<div class="title">Custom Heading</div>
		<section id="post">Post body text</section>
	</body></html>`

	s, err := NewSelectorStrategy(".title", "#post")
	require.NoError(t, err)
	heading, body, err := s.Extract(html)
	require.NoError(t, err)
	assert.Equal(t, "custom heading", NormalizeText(heading))
	assert.Equal(t, "post body text", NormalizeText(body))
}

func TestSelectorStrategy_HeadingInsideArticleNotRepeated(t *testing.T) {
	html := `<html><body><article><h1>Title</h1><p>Body words</p></article></body></html>`

	heading, body, err := DefaultSelectorStrategy().Extract(html)
	require.NoError(t, err)
	assert.Equal(t, "title", NormalizeText(heading))
	assert.Equal(t, "body words", NormalizeText(body))
}

func TestSelectorStrategy_BodySelectorOrder(t *testing.T) {
	html := `<html><body><main>
		<nav>Site menu</nav>
		<h1>Widget Installation Guide</h1>
		<div class="article-content"><p>Install the widget.</p></div>
		<aside>Related posts</aside>
	</main></body></html>`

	heading, body, err := DefaultSelectorStrategy().Extract(html)
	require.NoError(t, err)
	assert.Equal(t, "widget installation guide", NormalizeText(heading))
	assert.Equal(t, "install the widget.", NormalizeText(body))
	assert.NotContains(t, NormalizeText(body), "related posts")
}

func TestSelectorStrategy_FallsBackToLaterSelector(t *testing.T) {
	html := `<html><body><h1>Title</h1><main><p>Main text</p></main></body></html>`

	_, body, err := DefaultSelectorStrategy().Extract(html)
	require.NoError(t, err)
	assert.Equal(t, "main text", NormalizeText(body))
}

func TestSelectorStrategy_HeadingOutsideBodyKeepsInnerHeadings(t *testing.T) {
	html := `<html><body>
		<header><h1>Page Title</h1></header>
		<article><h1>Step one</h1><p>Body words</p></article>
	</body></html>`

	heading, body, err := DefaultSelectorStrategy().Extract(html)
	require.NoError(t, err)
	assert.Equal(t, "page title", NormalizeText(heading))
	assert.Equal(t, "step one body words", NormalizeText(body))
}

func TestNewSelectorStrategy_InvalidSelector(t *testing.T) {
	_, err := NewSelectorStrategy("h1[", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid heading selector")

	_, err = NewSelectorStrategy("", "article, )")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid body selector")
}

func TestSelectorStrategy_MissingHeading(t *testing.T) {
	_, _, err := DefaultSelectorStrategy().Extract(`<html><body><article>text</article></body></html>`)
	assert.ErrorIs(t, err, ErrHeadingNotFound)
}

func TestSelectorStrategy_MissingBody(t *testing.T) {
	_, _, err := DefaultSelectorStrategy().Extract(`<html><body><h1>Title</h1><div>text</div></body></html>`)
	assert.ErrorIs(t, err, ErrBodyNotFound)
}

func TestRegexStrategy_DefaultPatterns(t *testing.T) {
	heading, body, err := DefaultRegexStrategy().Extract(blogPage)
	require.NoError(t, err)
	assert.Equal(t, "widget installation guide", heading)
	assert.Equal(t, "install the widget in five steps. then configure it.", body)
}

func TestRegexStrategy_Missing(t *testing.T) {
	s := DefaultRegexStrategy()

	_, _, err := s.Extract(`<h1>plain heading</h1>`)
	assert.ErrorIs(t, err, ErrHeadingNotFound)

	_, _, err = s.Extract(`<h1 class="mb-4 mt-0 lg:pr-4 ">Heading</h1><div>no article</div>`)
	assert.ErrorIs(t, err, ErrBodyNotFound)
}

func TestNewRegexStrategy_RequiresCaptureGroup(t *testing.T) {
	_, err := NewRegexStrategy(`<h1>.*</h1>`, `(?s)<main>(.*)</main>`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capture group")

	_, err = NewRegexStrategy(`<h1>(.*)</h1>`, `(unclosed`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid body pattern")
}

func TestNewStrategy(t *testing.T) {
	s, err := NewStrategy(DefaultConfig())
	require.NoError(t, err)
	assert.IsType(t, &SelectorStrategy{}, s)

	s, err = NewStrategy(Config{})
	require.NoError(t, err)
	assert.IsType(t, &SelectorStrategy{}, s)

	s, err = NewStrategy(Config{Kind: KindRegex})
	require.NoError(t, err)
	assert.IsType(t, &RegexStrategy{}, s)

	_, err = NewStrategy(Config{HeadingSelector: "h1["})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid heading selector")

	_, err = NewStrategy(Config{Kind: "xpath"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown extraction strategy")
}
