package desktop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/webdesk/backend/internal/domain/content"
	"github.com/GriffinCanCode/webdesk/backend/internal/domain/window"
)

func TestRenderOrderAndFocus(t *testing.T) {
	d := newDesktop()
	require.NoError(t, d.ClickDock("finder"))
	require.NoError(t, d.ClickDock("terminal"))
	require.NoError(t, d.ClickDock("photos"))
	require.NoError(t, d.MinimizeWindow("photos"))

	v := Render(d.Snapshot())
	require.Len(t, v.Windows, 2)
	assert.Equal(t, window.Finder, v.Windows[0].ID)
	assert.Equal(t, window.Terminal, v.Windows[1].ID)
	assert.True(t, v.Windows[1].Focused)
	assert.False(t, v.Windows[0].Focused)
	assert.Equal(t, window.Terminal, v.Focused)
	assert.Equal(t, "Skills", v.Windows[1].Title)

	running := map[window.AppID]bool{}
	for _, item := range v.Dock {
		running[item.ID] = item.Running
	}
	assert.True(t, running[window.Photos], "minimized windows still run")
	assert.True(t, running[window.Finder])
	assert.False(t, running[window.Safari])
}

func TestRenderSanitizesPayload(t *testing.T) {
	d := newDesktop()
	require.NoError(t, d.OpenWindow("txtfile", &window.Payload{
		Name:        "<b>notes</b>.txt",
		Subtitle:    `<script>alert(1)</script>hi`,
		Description: []string{"<img src=x onerror=alert(1)>", "plain"},
		Image:       "javascript:alert(1)",
	}))

	v := Render(d.Snapshot())
	require.Len(t, v.Windows, 1)
	b := v.Windows[0].Body
	require.NotNil(t, b)
	assert.Equal(t, "notes.txt", b.Heading)
	assert.Equal(t, "hi", b.Subtitle)
	assert.Equal(t, []string{"plain"}, b.Paragraphs)
	assert.Empty(t, b.Image)
}

func TestRenderKeepsPlainTextLiteral(t *testing.T) {
	b := textBody(&window.Payload{
		Name:        "Tom & Jerry's",
		Subtitle:    `"quoted"`,
		Description: []string{"I'm a dev", "a < b", "<i>x</i> & y"},
	})
	require.NotNil(t, b)
	assert.Equal(t, "Tom & Jerry's", b.Heading)
	assert.Equal(t, `"quoted"`, b.Subtitle)
	assert.Equal(t, []string{"I'm a dev", "a < b", "x & y"}, b.Paragraphs)
}

func TestRenderImageViewer(t *testing.T) {
	d := newDesktop()
	require.NoError(t, d.OpenWindow("imgfile", nil))

	v := Render(d.Snapshot())
	require.Len(t, v.Windows, 1)
	assert.Nil(t, v.Windows[0].Body)
	assert.Empty(t, v.Windows[0].Title)

	require.NoError(t, d.OpenPhoto("/images/gal1.png"))
	v = Render(d.Snapshot())
	b := v.Windows[0].Body
	require.NotNil(t, b)
	assert.Equal(t, BodyImage, b.Kind)
	assert.Equal(t, "/images/gal1.png", b.Image)
	assert.Equal(t, "Photo", v.Windows[0].Title)
}

func TestRenderAppBodies(t *testing.T) {
	cat := content.Default()
	cases := map[window.AppID]string{
		window.Finder:   BodyFinder,
		window.Trash:    BodyFinder,
		window.Safari:   BodyArticles,
		window.Photos:   BodyGallery,
		window.Contact:  BodyContact,
		window.Terminal: BodyTerminal,
		window.Resume:   BodyDocument,
	}
	for app, kind := range cases {
		t.Run(string(app), func(t *testing.T) {
			b := body(cat, window.State{ID: app, IsOpen: true})
			require.NotNil(t, b)
			assert.Equal(t, kind, b.Kind)
		})
	}

	gallery := body(cat, window.State{ID: window.Photos})
	assert.Len(t, gallery.Images, 4)

	trash := body(cat, window.State{ID: window.Trash})
	require.Len(t, trash.Links, 1)
	assert.Equal(t, "trash", trash.Links[0].URL)

	resume := body(cat, window.State{ID: window.Resume})
	assert.Equal(t, "/files/resume.pdf", resume.Image)
}

func TestRenderIsPure(t *testing.T) {
	d := newDesktop()
	require.NoError(t, d.ClickDock("finder"))
	snap := d.Snapshot()
	v1 := Render(snap)
	v2 := Render(snap)
	assert.Equal(t, v1, v2)
	assert.Equal(t, snap.Version, d.Version())
}

func TestSafeURL(t *testing.T) {
	assert.Equal(t, "/images/a.png", safeURL("/images/a.png"))
	assert.Equal(t, "https://example.com/x", safeURL("https://example.com/x"))
	assert.Empty(t, safeURL("//evil.example/x"))
	assert.Empty(t, safeURL("data:text/html,hi"))
	assert.Empty(t, safeURL("relative.png"))
	assert.Empty(t, safeURL(""))
}
