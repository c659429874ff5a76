package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/openmol/drugforge/data"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDatabase is a throwaway MariaDB container provisioned with the
// drugforge schema, plus the connection settings tests need to reach it.
type TestDatabase struct {
	Container testcontainers.Container
	Host      string
	Port      string
	Database  string
	User      string
	Password  string
}

const (
	dbImage        = "mariadb:11"
	dbRootPassword = "drugforge-test-root"
	dbDatabase     = "drugforge"
	dbUser         = "drugforge"
	dbPassword     = "drugforge-test"
)

// CreateTestDatabase starts a MariaDB container, provisions the drugforge
// schema from the embedded DDL, and returns the connection settings. Pass a
// nil *testing.T when running outside a test binary (cmd/testdb).
func CreateTestDatabase(t *testing.T) (*TestDatabase, error) {
	ctx := context.Background()

	image := os.Getenv("DB_IMAGE")
	if image == "" {
		image = dbImage
	}

	tcpPort, err := nat.NewPort("tcp", "3306")
	if err != nil {
		exitWithError(t, err, "Failed to create DB port")
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": dbRootPassword,
				"MYSQL_DATABASE":      dbDatabase,
				"MYSQL_USER":          dbUser,
				"MYSQL_PASSWORD":      dbPassword,
			},
			WaitingFor: wait.ForListeningPort(tcpPort).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		exitWithError(t, err, "Failed to start MariaDB")
	}

	testDB := &TestDatabase{
		Container: container,
		Database:  dbDatabase,
		User:      dbUser,
		Password:  dbPassword,
	}

	host, _ := container.Host(ctx)
	mappedPort, _ := container.MappedPort(ctx, tcpPort)
	testDB.Host = host
	testDB.Port = mappedPort.Port()

	if err := provisionSchema(testDB); err != nil {
		testDB.Terminate(t)
		exitWithError(t, err, "Failed to provision schema")
	}

	logMessage(t, "MariaDB testcontainer ready at %s:%s", testDB.Host, testDB.Port)
	return testDB, nil
}

// Terminate stops and removes the container.
func (td *TestDatabase) Terminate(t *testing.T) {
	if td.Container == nil {
		return
	}
	if err := td.Container.Terminate(context.Background()); err != nil {
		logMessage(t, "Failed to terminate MariaDB: %v", err)
	}
}

// SetEnv exports the container's connection settings as the environment
// variables config.Load reads.
func (td *TestDatabase) SetEnv() {
	os.Setenv("DB_TYPE", "mariadb")
	os.Setenv("DB_HOST", td.Host)
	os.Setenv("DB_PORT", td.Port)
	os.Setenv("DB_DATABASE", td.Database)
	os.Setenv("DB_USER", td.User)
	os.Setenv("DB_PASSWORD", td.Password)
}

// provisionSchema creates the drugforge tables and grants from the embedded
// init SQL, retrying the initial connection until the server is really ready.
func provisionSchema(td *TestDatabase) error {
	db, err := sql.Open("mysql", fmt.Sprintf("root:%s@tcp(%s:%s)/", dbRootPassword, td.Host, td.Port))
	if err != nil {
		return fmt.Errorf("connect for setup: %w", err)
	}
	defer db.Close()

	for i := 0; i < 30; i++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		return fmt.Errorf("MariaDB not ready after 30 seconds: %w", err)
	}

	if err := executeSQL(db, data.InitdbMariaDBTables); err != nil {
		return fmt.Errorf("tables init sql: %w", err)
	}
	if err := executeSQL(db, data.InitdbMariaDBPrivileges); err != nil {
		return fmt.Errorf("privileges init sql: %w", err)
	}
	return nil
}

// executeSQL runs a multi-statement SQL script, one statement at a time.
func executeSQL(db *sql.DB, script string) error {
	var stripped []string
	for _, line := range strings.Split(script, "\n") {
		if trimmed := strings.TrimSpace(line); strings.HasPrefix(trimmed, "--") {
			continue
		}
		stripped = append(stripped, line)
	}

	queries := strings.Split(strings.Join(stripped, "\n"), ";")
	for _, q := range queries {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("%s : when executing > %s", err.Error(), q)
		}
	}
	return nil
}

func exitWithError(t *testing.T, err error, msg string) {
	if t != nil {
		t.Fatalf(msg+": %v", err)
	} else {
		fmt.Printf(msg+": %v\n", err)
		os.Exit(1)
	}
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
