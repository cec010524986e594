package http

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roommates/core/internal/domain/entities"
)

func TestRenderRoommateList(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		html, err := RenderRoommateList(nil)
		require.NoError(t, err)
		assert.Equal(t, "<ul class=\"list-group mt-3\">\n</ul>", string(html))
	})

	t.Run("one item per roommate", func(t *testing.T) {
		html, err := RenderRoommateList(testRoommates)
		require.NoError(t, err)
		assert.Equal(t, len(testRoommates), strings.Count(string(html), `<li class="list-group-item">`))
		assert.Contains(t, string(html), `<h5 class="mt-0">Lucia Moreno</h5>`)
	})

	t.Run("escapes upstream text", func(t *testing.T) {
		html, err := RenderRoommateList([]entities.Roommate{
			{ID: "x", Name: `<script>alert("x")</script>`, Age: 1, Phone: "a&b"},
		})
		require.NoError(t, err)
		assert.NotContains(t, string(html), "<script>")
		assert.Contains(t, string(html), "&lt;script&gt;")
		assert.Contains(t, string(html), "a&amp;b")
	})
}
