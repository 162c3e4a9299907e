package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestJSONCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	type entry struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}

	key := client.LookupKey("chains")
	var missed []entry
	found, err := client.GetJSON(ctx, key, &missed)
	if err != nil {
		t.Fatalf("unexpected error on miss: %v", err)
	}
	if found {
		t.Fatalf("expected cache miss for empty store")
	}

	stored := []entry{{Code: "VCH", Name: "Value Chain"}, {Code: "SMH", Name: "SM Hypermarket"}}
	if err := client.SetJSON(ctx, key, stored, 5*time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	var got []entry
	found, err = client.GetJSON(ctx, key, &got)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !found {
		t.Fatalf("expected cache hit after set")
	}
	if len(got) != 2 || got[0].Code != "VCH" || got[1].Code != "SMH" {
		t.Fatalf("unexpected cached payload %+v", got)
	}

	if err := client.Del(ctx, key); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	found, err = client.GetJSON(ctx, key, &got)
	if err != nil {
		t.Fatalf("unexpected error after del: %v", err)
	}
	if found {
		t.Fatalf("expected miss after invalidation")
	}
}

func TestGetJSONCorruptPayload(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	mock.data["epc:lookup:brands"] = "{not-json"
	var dest []string
	if _, err := client.GetJSON(ctx, "epc:lookup:brands", &dest); err == nil {
		t.Fatalf("expected decode error for corrupt payload")
	}
}

func TestIdempotencySetNX(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	key := client.IdempotencyKey("mass-upload", "req-123")
	ok, err := client.SetNX(ctx, key, "pending", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected first SetNX to win")
	}

	ok, err = client.SetNX(ctx, key, "pending", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected duplicate SetNX to lose")
	}

	val, err := client.Get(ctx, key)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if val != "pending" {
		t.Fatalf("expected stored marker, got %q", val)
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.LookupKey("nbfi", "stores", "VCH"); got != "epc:lookup:nbfi:stores:VCH" {
		t.Fatalf("unexpected lookup key %s", got)
	}
	if got := client.IdempotencyKey("scope", "id"); got != "epc:idempotency:scope:id" {
		t.Fatalf("unexpected idempotency key %s", got)
	}
	if got := client.LookupKey("chains", ""); got != "epc:lookup:chains" {
		t.Fatalf("empty parts should be skipped, got %s", got)
	}
}

func TestUninitializedClient(t *testing.T) {
	client := &Client{}
	if err := client.Ping(context.Background()); err == nil {
		t.Fatalf("expected error from uninitialized client")
	}
	if _, err := client.Get(context.Background(), "k"); err == nil {
		t.Fatalf("expected error from uninitialized client")
	}
}

type mockCmdable struct {
	data map[string]string
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: make(map[string]string)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = stringify(value)
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd {
	if _, exists := m.data[key]; exists {
		return redis.NewBoolResult(false, nil)
	}
	m.data[key] = stringify(value)
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func stringify(value any) string {
	if b, ok := value.([]byte); ok {
		return string(b)
	}
	return fmt.Sprint(value)
}
