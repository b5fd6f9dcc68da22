package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/habitual/internal/constants"
)

func TestSetAndGetConnectionString(t *testing.T) {
	gokeyring.MockInit()

	testConnStr := "postgres://testuser@localhost:5432/testdb?sslmode=disable"

	if err := SetConnectionString(testConnStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	retrieved, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if retrieved != testConnStr {
		t.Errorf("GetConnectionString() = %q, want %q", retrieved, testConnStr)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString(""); err == nil {
		t.Error("SetConnectionString(\"\") should return an error")
	}
}

func TestDeleteConnectionString(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("postgres://testuser@localhost:5432/testdb"); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}
	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConnectionString() error = %v, want %v", err, ErrNotFound)
	}
	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestResolveConnection(t *testing.T) {
	oldGetenv := getenvFunc
	defer func() { getenvFunc = oldGetenv }()

	env := map[string]string{}
	getenvFunc = func(key string) string { return env[key] }

	gokeyring.MockInit()
	const fallback = "/tmp/habitual.db"

	if got, src := ResolveConnection("", fallback); got != fallback || src != SourceDefault {
		t.Errorf("empty sources = %q (%s), want fallback", got, src)
	}

	if err := SetConnectionString("postgres://keyring@localhost/habitual"); err != nil {
		t.Fatal(err)
	}
	if got, src := ResolveConnection("", fallback); got != "postgres://keyring@localhost/habitual" || src != SourceKeyring {
		t.Errorf("keyring = %q (%s)", got, src)
	}

	env[constants.EnvDBConnection] = "postgres://env@localhost/habitual"
	if got, src := ResolveConnection("", fallback); got != "postgres://env@localhost/habitual" || src != SourceEnv {
		t.Errorf("env = %q (%s)", got, src)
	}

	if got, src := ResolveConnection("/explicit.db", fallback); got != "/explicit.db" || src != SourceFlag {
		t.Errorf("explicit = %q (%s)", got, src)
	}
}
