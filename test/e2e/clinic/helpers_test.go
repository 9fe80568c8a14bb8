package clinic_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/carebridgehq/clinicd/pkg/clinicsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for clinic service end-to-end tests.
 * This includes container setup, service operations, and assertions.
 */

const (
	testImageName = "clinicd-test:latest"

	ownerEmail    = "owner@sunrise.example"
	ownerPassword = "Owner123!"
	ownerName     = "Dana Reyes"
	clinicName    = "Sunrise Family Clinic"
)

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Clinic Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Clinic Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/clinicd/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupClinicContainer starts the clinic service in a container and returns
// the base URL plus the container handle (tests scrape logs for the
// verification codes that would otherwise go out by mail).
func setupClinicContainer(t *testing.T) (string, testcontainers.Container) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"CLINICD_DATABASE_FILE": "/clinic.db",
			"CLINICD_PEPPER_FILE":   "/pepper",
			"CLINICD_BASE_URL":      "https://clinic.example",
			"ENV":                   "test",
			"LOG_LEVEL":             "info",
			"LOG_FORMAT":            "json",
			// Relaxed rate limits; tests make many rapid requests which
			// would otherwise hit the strict production limits
			"RATELIMIT_STRICT_REQUESTS":   "1000",
			"RATELIMIT_STRICT_WINDOW_SEC": "60",
			"RATELIMIT_STRICT_BURST":      "1000",
			"RATELIMIT_MODERATE_REQUESTS": "1000",
			"RATELIMIT_MODERATE_BURST":    "1000",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port()), container
}

// registerClinic registers a clinic with the given owner and returns the
// response.
func registerClinic(t *testing.T, client *clinicsdk.Client, name, email, password, fullName string) clinicsdk.RegisterClinicResponse {
	t.Helper()

	resp, err := client.RegisterClinic(t.Context(), clinicsdk.RegisterClinicRequest{
		ClinicName:    name,
		OwnerEmail:    email,
		OwnerPassword: password,
		OwnerFullName: fullName,
	})
	require.NoError(t, err, "Clinic registration should succeed")
	require.NotEmpty(t, resp.ClinicID)
	require.NotEmpty(t, resp.OwnerID)
	require.NotEmpty(t, resp.StaffID)

	return resp
}

// loginOwner signs in and returns an authenticated session.
func loginOwner(t *testing.T, client *clinicsdk.Client, email, password string) *clinicsdk.Session {
	t.Helper()

	session, err := client.Login(t.Context(), email, password)
	require.NoError(t, err, "Login should succeed")
	require.NotNil(t, session)

	return session
}

// createInvite mints an invite and returns the response together with the
// raw invite token extracted from the echoed link.
func createInvite(t *testing.T, session *clinicsdk.Session, clinicID, email, fullName string) (clinicsdk.CreateInviteResponse, string) {
	t.Helper()

	resp, err := session.CreateInvite(t.Context(), clinicsdk.CreateInviteRequest{
		ClinicID: clinicID,
		Email:    email,
		FullName: fullName,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.InviteID)
	require.NotEmpty(t, resp.InviteLink, "Test environment should echo the invite link")

	return resp, tokenFromLink(t, resp.InviteLink)
}

// tokenFromLink pulls the raw invite token out of an onboarding URL.
func tokenFromLink(t *testing.T, link string) string {
	t.Helper()

	idx := strings.LastIndex(link, "/")
	require.Greater(t, idx, 0, "Invite link should contain a path")

	token := link[idx+1:]
	require.NotEmpty(t, token)
	return token
}

var verificationCodeRe = regexp.MustCompile(`"code":"(\d{6})"`)

// verificationCodeFromLogs scrapes the container log for the most recent
// verification code issued to the given address. Code delivery rides the
// application log until a mail template exists for it.
func verificationCodeFromLogs(t *testing.T, container testcontainers.Container, email string) string {
	t.Helper()
	ctx := context.Background()

	var code string
	require.Eventually(t, func() bool {
		reader, err := container.Logs(ctx)
		if err != nil {
			return false
		}
		defer reader.Close()

		raw, err := io.ReadAll(reader)
		if err != nil {
			return false
		}

		for _, line := range strings.Split(string(raw), "\n") {
			if !strings.Contains(line, "verification code issued") {
				continue
			}
			if !strings.Contains(line, `"email":"`+strings.ToLower(email)+`"`) {
				continue
			}
			if m := verificationCodeRe.FindStringSubmatch(line); m != nil {
				code = m[1] // keep scanning; the last match is the active challenge
			}
		}
		return code != ""
	}, 10*time.Second, 250*time.Millisecond, "verification code should appear in the service log")

	return code
}

// requireAPIError asserts err is an APIError carrying the expected code.
func requireAPIError(t *testing.T, err error, code string) {
	t.Helper()

	require.Error(t, err)
	require.True(t, clinicsdk.IsCode(err, code),
		"expected error code %q, got: %v", code, err)
}
