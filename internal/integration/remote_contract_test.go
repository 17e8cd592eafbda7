package integration

import (
	"context"
	"testing"

	"todo_webapp/internal/storage"
	"todo_webapp/internal/storage/storagetest"
)

func TestRemoteStoreContract(t *testing.T) {
	storagetest.RunContract(t, func(t *testing.T) storage.Store {
		ts, _ := startServer(t)
		return storage.NewRemote(ts.URL, ts.Client())
	})
}

func TestRemotePing(t *testing.T) {
	ts, _ := startServer(t)
	remote := storage.NewRemote(ts.URL, ts.Client())
	if err := remote.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}

	ts.Close()
	if err := remote.Ping(context.Background()); err == nil {
		t.Fatal("expected ping to fail after server shutdown")
	}
}
