// This file is a helper for running tests with testcontainers.
// It is used by the e2e tests in a standalone executable and by other test files in the helpers package.
// Expects environment variables to be loaded from .env files.
//

package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/docker/docker/api/types/build"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/localnerve/configdb/data"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

type TestContainers struct {
	Network                  *testcontainers.DockerNetwork
	DBContainer              testcontainers.Container
	ConfigDBContainer        testcontainers.Container
	ConfigDBBuilderContainer testcontainers.Container
}

func (tc *TestContainers) Terminate(t *testing.T) {
	ctx := context.Background()
	if tc.ConfigDBContainer != nil {
		if err := tc.ConfigDBContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate ConfigDB: %v", err)
		}
	}
	if tc.ConfigDBBuilderContainer != nil {
		if err := tc.ConfigDBBuilderContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate ConfigDB Builder: %v", err)
		}
	}
	if tc.DBContainer != nil {
		if err := tc.DBContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate MariaDB: %v", err)
		}
	}
	if tc.Network != nil {
		if err := tc.Network.Remove(ctx); err != nil {
			logMessage(t, "Failed to remove network: %v", err)
		}
	}
}

func CreateAllTestContainers(t *testing.T) (*TestContainers, error) {
	ctx := context.Background()
	testContainers := &TestContainers{}

	debugContainer := os.Getenv("DEBUG_CONTAINER")

	// Create a network
	nw, err := network.New(ctx)
	if err != nil {
		exitWithError(t, err, "Failed to create network")
	}
	testContainers.Network = nw
	networkName := nw.Name

	// Create and start the Database container
	dbType := os.Getenv("DB_TYPE")
	dbNetworkName := os.Getenv("DB_HOST")
	tcpDbPort, err := nat.NewPort("tcp", os.Getenv("DB_PORT"))
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to create DB port")
	}
	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        os.Getenv("DB_IMAGE"),
			ExposedPorts: []string{string(tcpDbPort)},

			Env:        getDBInitEnvMap(dbType),
			WaitingFor: wait.ForListeningPort(tcpDbPort).WithStartupTimeout(60 * time.Second),
			Networks:   []string{networkName},
			NetworkAliases: map[string][]string{
				networkName: {dbNetworkName},
			},
		},
		Started: true,
	})
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to start Database")
	}
	testContainers.DBContainer = dbContainer

	// Initialize the database
	dbHost, _ := dbContainer.Host(ctx)
	dbPort, _ := dbContainer.MappedPort(ctx, tcpDbPort)
	switch dbType {
	case "postgres":
		if err := performPostgresDBInit(t, testContainers, dbHost, dbPort); err != nil {
			testContainers.Terminate(t)
			exitWithError(t, err, "Failed to initialize database")
		}
	case "mysql", "mariadb":
		if err := performMySqlDBInit(t, testContainers, dbHost, dbPort); err != nil {
			testContainers.Terminate(t)
			exitWithError(t, err, "Failed to initialize database")
		}
	}

	imageName := "configdb-test:latest"

	// Check if image exists
	imageExists, err := imageExists(ctx, imageName)
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to check if image exists")
	}

	configdbPortNumber := os.Getenv("PORT")
	tcpConfigdbPort, err := nat.NewPort("tcp", configdbPortNumber)
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to create ConfigDB port")
	}

	configdbExposedPorts := []string{string(tcpConfigdbPort)}
	if debugContainer == "true" {
		configdbExposedPorts = append(configdbExposedPorts, "2345/tcp")
	}

	hostConfigModifier := func(hostConfig *container.HostConfig) {
		if debugContainer == "true" {
			hostConfig.PortBindings = nat.PortMap{
				"2345/tcp": []nat.PortBinding{
					{HostIP: "127.0.0.1", HostPort: "2345"}, // Force local 2345
				},
			}
			hostConfig.CapAdd = []string{"SYS_PTRACE"}
			hostConfig.SecurityOpt = []string{"apparmor:unconfined"}
		}
	}

	var waitStrategy wait.Strategy
	waitStrategy = wait.ForHTTP("/metrics").WithPort(tcpConfigdbPort).WithStartupTimeout(30 * time.Second)
	if debugContainer == "true" {
		waitStrategy = wait.ForLog("API server listening at: [::]:2345").WithStartupTimeout(5 * time.Minute)
	}

	// Create ConfigDB container request (we add to it later)
	configdbContainerRequest := testcontainers.ContainerRequest{
		ExposedPorts: configdbExposedPorts,
		Env: map[string]string{
			"DB_TYPE":             dbType,
			"DB_HOST":             dbNetworkName,
			"DB_PORT":             os.Getenv("DB_PORT"),
			"DB_DATABASE":         os.Getenv("DB_DATABASE"),
			"DB_USER":             os.Getenv("DB_USER"),
			"DB_PASSWORD":         os.Getenv("DB_PASSWORD"),
			"DB_CONNECTION_LIMIT": os.Getenv("DB_CONNECTION_LIMIT"),
			"JWT_SECRET":          os.Getenv("JWT_SECRET"),
			"JWT_ISSUER":          os.Getenv("JWT_ISSUER"),
			"TOKEN_TTL_MINUTES":   os.Getenv("TOKEN_TTL_MINUTES"),
			"PORT":                configdbPortNumber,
		},
		HostConfigModifier: hostConfigModifier,
		WaitingFor:         waitStrategy,
		Networks:           []string{networkName},
	}

	if debugContainer == "true" {
		configdbContainerRequest.Entrypoint = []string{
			"/usr/local/bin/dlv",
			"--listen=:2345",
			"--headless=true",
			"--api-version=2",
			"--accept-multiclient",
			"exec",
			"./configdb",
		}
	}

	if !imageExists {
		// Build ConfigDB builder image and add fromDockerfile to ConfigDB container request
		configdbResourceReaperSessionID := uuid.New().String()

		configdbBuildArgs := map[string]*string{
			"RESOURCE_REAPER_SESSION_ID": &configdbResourceReaperSessionID,
		}
		if debugContainer == "true" {
			configdbBuildArgs["DEBUG"] = &debugContainer
		}

		buildContext := os.Getenv("TESTCONTAINERS_BUILD_CONTEXT")
		if buildContext == "" {
			buildContext = "../.."
		}

		logMessage(t, "Image %s does not exist, building...", imageName)
		configdbBuilderContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				FromDockerfile: testcontainers.FromDockerfile{
					Context:    buildContext,
					Dockerfile: "Dockerfile",
					Repo:       "configdb-test-builder",
					Tag:        "latest",
					BuildArgs:  configdbBuildArgs,
					BuildOptionsModifier: func(opts *build.ImageBuildOptions) {
						opts.Target = "builder" // Build specific stage
					},
					PrintBuildLog: true,
				},
			},
			Started: false,
		})
		if err != nil {
			testContainers.Terminate(t)
			exitWithError(t, err, "Failed to build configdb-test-builder")
		}
		testContainers.ConfigDBBuilderContainer = configdbBuilderContainer

		imageNameParts := strings.Split(imageName, ":")
		fromDockerfile := testcontainers.FromDockerfile{
			Context:    buildContext,
			Dockerfile: "Dockerfile",
			Repo:       imageNameParts[0],
			Tag:        imageNameParts[1],
			KeepImage:  true, // Keep the image so we can reuse it
			BuildArgs:  configdbBuildArgs,
			BuildOptionsModifier: func(opts *build.ImageBuildOptions) {
				opts.Target = "runtime"
			},
			PrintBuildLog: true,
		}

		configdbContainerRequest.FromDockerfile = fromDockerfile
	} else {
		// Add Image to ConfigDB container request to reuse the existing image
		logMessage(t, "Image %s exists, reusing...", imageName)
		configdbContainerRequest.Image = imageName
	}

	// Create and start the ConfigDB container
	configdbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: configdbContainerRequest,
		Started:          true,
	})
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to start ConfigDB")
	}
	testContainers.ConfigDBContainer = configdbContainer

	// Log the localhost and mapped ports for ConfigDB
	configdbHost, _ := configdbContainer.Host(ctx)
	configdbPort, _ := configdbContainer.MappedPort(ctx, tcpConfigdbPort)
	logMessage(t, "BASE_URL=%s:%s", configdbHost, configdbPort.Port())

	logMessage(t, "ConfigDB testcontainer started successfully")
	return testContainers, nil
}

func getDBInitEnvMap(dbType string) map[string]string {
	switch dbType {
	case "postgres":
		return map[string]string{
			"POSTGRES_PASSWORD": os.Getenv("DB_PASSWORD"),
			"POSTGRES_USER":     os.Getenv("DB_USER"),
			"POSTGRES_DB":       os.Getenv("DB_DATABASE"),
		}
	default:
	case "mariadb", "mysql":
		return map[string]string{
			"MYSQL_ROOT_PASSWORD": os.Getenv("DB_ROOT_PASSWORD"),
			"MYSQL_DATABASE":      os.Getenv("DB_DATABASE"),
			"MYSQL_USER":          os.Getenv("DB_USER"),
			"MYSQL_PASSWORD":      os.Getenv("DB_PASSWORD"),
		}
	}
	return nil
}

func performMySqlDBInit(t *testing.T, testContainers *TestContainers, dbHost string, dbPort nat.Port) error {
	db, err := sql.Open("mysql", fmt.Sprintf("root:%s@tcp(%s:%s)/", os.Getenv("DB_ROOT_PASSWORD"), dbHost, dbPort.Port()))
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to connect to MariaDB for setup")
	}
	defer db.Close()

	// Wait for connection to be really ready
	for i := 0; i < 30; i++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "MariaDB not ready after 30 seconds")
	}

	_, err = db.Exec(fmt.Sprintf("CREATE USER IF NOT EXISTS '%s'@'%%' IDENTIFIED BY '%s'", os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD")))
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, fmt.Sprintf("Failed to create user %s", os.Getenv("DB_USER")))
	}
	err = executeSQL(db, data.InitdbMariaDBTables)
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, fmt.Sprintf("Failed to execute %s tables init sql", os.Getenv("DB_TYPE")))
	}
	err = executeSQL(db, data.InitdbMariaDBPrivileges)
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, fmt.Sprintf("Failed to execute %s privileges init sql", os.Getenv("DB_TYPE")))
	}

	return nil
}

func performPostgresDBInit(_ *testing.T, _ *TestContainers, _ string, _ nat.Port) error {
	return fmt.Errorf("Postgres not fully supported yet")
}

func executeSQL(db *sql.DB, sql string) error {
	lines := strings.Split(sql, "\n")

	var ncls []string
	for _, l := range lines {
		ncl := excludeComment(l)
		ncls = append(ncls, ncl)
	}

	l := strings.Join(ncls, "")
	queries := strings.Split(l, ";")
	queries = queries[:len(queries)-1]

	for _, q := range queries {
		_, err := db.Exec(q)
		if err != nil {
			return fmt.Errorf("%s : when executing > %s", err.Error(), q)
		}
	}
	return nil
}

func excludeComment(line string) string {
	d := "\""
	s := "'"
	c := "--"

	var nc string
	ck := line
	mx := len(line) + 1

	for {
		if len(ck) == 0 {
			return nc
		}

		di := strings.Index(ck, d)
		si := strings.Index(ck, s)
		ci := strings.Index(ck, c)

		if di < 0 {
			di = mx
		}
		if si < 0 {
			si = mx
		}
		if ci < 0 {
			ci = mx
		}

		var ei int

		if di < si && di < ci {
			nc += ck[:di+1]
			ck = ck[di+1:]
			ei = strings.Index(ck, d)
		} else if si < di && si < ci {
			nc += ck[:si+1]
			ck = ck[si+1:]
			ei = strings.Index(ck, s)
		} else if ci < di && ci < si {
			return nc + ck[:ci]
		} else {
			return nc + ck
		}

		nc += ck[:ei+1]
		ck = ck[ei+1:]
	}
}

func imageExists(ctx context.Context, imageName string) (bool, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false, err
	}
	defer cli.Close()

	images, err := cli.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return false, err
	}

	for _, image := range images {
		for _, tag := range image.RepoTags {
			if tag == imageName {
				return true, nil
			}
		}
	}

	return false, nil
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
