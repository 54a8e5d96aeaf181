package tcgapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"cardkeep/internal/tcgapi"
)

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := tcgapi.New("", "https://example.com"); err == nil {
		t.Fatal("expected error when api key missing")
	}
}

func TestGetCardSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "key" {
			t.Fatalf("expected X-Api-Key header, got %q", r.Header.Get("X-Api-Key"))
		}
		if r.URL.Path != "/cards/base1-58" {
			t.Fatalf("unexpected path: %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":"base1-58","name":"Pikachu","hp":"40","types":["Lightning"],"tcgplayer":{"prices":{"normal":{"market":1.25}}}}}`))
	}))
	t.Cleanup(server.Close)

	client, err := tcgapi.New("key", server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	card, err := client.GetCard(context.Background(), "base1-58")
	if err != nil {
		t.Fatalf("GetCard returned error: %v", err)
	}
	if card.Name != "Pikachu" || card.HP != "40" {
		t.Fatalf("unexpected card: %#v", card)
	}
	tier, ok := card.TCGPlayer.Prices["normal"]
	if !ok || tier.Market == nil || *tier.Market != 1.25 {
		t.Fatalf("unexpected prices: %#v", card.TCGPlayer.Prices)
	}
}

func TestGetCardHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"message":"not found"}}`))
	}))
	t.Cleanup(server.Close)

	client, err := tcgapi.New("key", server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.GetCard(context.Background(), "missing-1"); err == nil {
		t.Fatal("expected error when service returns non-200")
	}
}

func TestGetCardMissingData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	client, err := tcgapi.New("key", server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.GetCard(context.Background(), "base1-58"); err == nil {
		t.Fatal("expected error when data field absent")
	}
}

func TestSearchCardsEscapesQuery(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(`{"data":[{"id":"base4-1","name":"Mr. Mime"}],"count":1,"totalCount":1}`))
	}))
	t.Cleanup(server.Close)

	client, err := tcgapi.New("key", server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	resp, err := client.SearchCards(context.Background(), `Mr. Mime`, `Jungle "Special"`)
	if err != nil {
		t.Fatalf("SearchCards returned error: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].ID != "base4-1" {
		t.Fatalf("unexpected response: %#v", resp)
	}
	want := `name:"Mr. Mime" set.name:"Jungle \"Special\""`
	if gotQuery != want {
		t.Fatalf("unexpected query: got %q want %q", gotQuery, want)
	}
}

func TestSearchCardsEmptyName(t *testing.T) {
	client, err := tcgapi.New("key", "https://example.com")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.SearchCards(context.Background(), "  ", "Base"); err == nil {
		t.Fatal("expected error for empty name")
	}
}
