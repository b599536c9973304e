package platforms

import (
	"context"
	"net/http"
	"time"

	"contest-compass/internal/models"
)

const (
	PlatformLeetCode   = "LeetCode"
	PlatformCodeforces = "Codeforces"
	PlatformCodeChef   = "CodeChef"
)

// pastWindow bounds how many finished contests each adapter reports,
// so the store doesn't accumulate a platform's entire history.
const pastWindow = 20

// Fetcher pulls a normalized contest list from one platform.
// Implementations return an error on transport or decode failure and let
// the aggregator decide what to do with it; they never panic.
type Fetcher interface {
	Platform() string
	Fetch(ctx context.Context) ([]models.Contest, error)
}

func defaultClient() *http.Client {
	return &http.Client{Timeout: 20 * time.Second}
}
