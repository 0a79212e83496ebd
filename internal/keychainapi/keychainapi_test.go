package keychainapi

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kevincowleys/dji-log-parser/internal/keychain"
)

func TestFetchSuccess(t *testing.T) {
	key := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
	iv := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Api-Key") != "test-key" {
			t.Errorf("missing api key header")
		}
		resp := map[string]any{
			"result": map[string]any{"code": 0, "msg": ""},
			"data": [][]map[string]string{
				{{"featurePoint": "FR_Standardization_Feature_Base_1", "aesKey": key, "aesIv": iv}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewClient("test-key")
	c.Endpoint = srv.URL

	req := keychain.Request{Version: 14, Department: 3, KeychainArray: [][]keychain.EncodedFeaturePoint{
		{{FeaturePoint: keychain.BaseFeature, AesCiphertext: "C1"}},
	}}

	groups, err := c.Fetch(req)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	entry, ok := groups[0].Get(keychain.BaseFeature)
	if !ok {
		t.Fatal("expected BaseFeature entry")
	}
	if string(entry.Key) != "0123456789abcdef0123456789abcdef" {
		t.Errorf("unexpected key: %q", entry.Key)
	}
}

func TestFetchForbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient("bad-key")
	c.Endpoint = srv.URL

	_, err := c.Fetch(keychain.Request{})
	if err == nil {
		t.Fatal("expected error for 403 response")
	}
}

func TestFetchApplicationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"result": map[string]any{"code": 1, "msg": "boom"},
		})
	}))
	defer srv.Close()

	c := NewClient("key")
	c.Endpoint = srv.URL

	_, err := c.Fetch(keychain.Request{})
	if err == nil {
		t.Fatal("expected application error")
	}
}

func TestFetchAsync(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"result": map[string]any{"code": 0, "msg": ""},
			"data":   [][]map[string]string{},
		})
	}))
	defer srv.Close()

	c := NewClient("key")
	c.Endpoint = srv.URL

	result := <-c.FetchAsync(keychain.Request{})
	if result.Err != nil {
		t.Fatalf("FetchAsync: %v", result.Err)
	}
	if len(result.Groups) != 0 {
		t.Fatalf("expected 0 groups, got %d", len(result.Groups))
	}
}
