package overpass

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchNearby(t *testing.T) {
	t.Run("レスポンスの要素を返しクエリに条件が含まれる", func(t *testing.T) {
		var receivedBody string
		var receivedUA string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			receivedBody = string(body)
			receivedUA = r.Header.Get("User-Agent")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"elements": [
					{"type": "node", "id": 123, "lat": 34.05, "lon": -118.24,
					 "tags": {"name": "Night Diner", "amenity": "restaurant", "opening_hours": "24/7"}},
					{"type": "way", "id": 456, "center": {"lat": 34.06, "lon": -118.25},
					 "tags": {"amenity": "cafe"}}
				]
			}`))
		}))
		defer server.Close()

		provider := NewOverpassProvider(server.URL, "TestAgent/1.0")
		elements, err := provider.FetchNearby(context.Background(), 34.0522, -118.2437, 1000)

		assert.NoError(t, err)
		assert.Len(t, elements, 2)
		assert.Equal(t, "TestAgent/1.0", receivedUA)
		assert.Contains(t, receivedBody, `restaurant|fast_food|cafe`)
		assert.Contains(t, receivedBody, "around:1000")
		assert.Contains(t, receivedBody, "out center tags;")

		// node要素は直接座標を持つ
		lat, lon, ok := elements[0].Coordinate()
		assert.True(t, ok)
		assert.Equal(t, 34.05, lat)
		assert.Equal(t, -118.24, lon)

		// way要素はcenterから座標を取る
		lat, lon, ok = elements[1].Coordinate()
		assert.True(t, ok)
		assert.Equal(t, 34.06, lat)
		assert.Equal(t, -118.25, lon)
	})

	t.Run("0件の正常応答はエラーではない", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"elements": []}`))
		}))
		defer server.Close()

		provider := NewOverpassProvider(server.URL, "")
		elements, err := provider.FetchNearby(context.Background(), 34.0522, -118.2437, 1000)

		assert.NoError(t, err)
		assert.Empty(t, elements)
	})

	t.Run("非2xxはステータスを含むエラーになる", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusGatewayTimeout)
			w.Write([]byte("overloaded"))
		}))
		defer server.Close()

		provider := NewOverpassProvider(server.URL, "")
		_, err := provider.FetchNearby(context.Background(), 34.0522, -118.2437, 1000)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "504")
	})

	t.Run("接続エラーはエラーとして返る", func(t *testing.T) {
		provider := NewOverpassProvider("http://127.0.0.1:1", "")
		_, err := provider.FetchNearby(context.Background(), 34.0522, -118.2437, 1000)
		assert.Error(t, err)
	})
}
