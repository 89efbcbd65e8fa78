package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompterFillsOnlyMissing(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("me@example.test\nBerlin\n"), &out)

	email, password := "", "preset"
	require.NoError(t, p.fill("Login details",
		promptField{"Enter your email", &email},
		promptField{"Enter your password", &password},
	))
	assert.Equal(t, "me@example.test", email)
	assert.Equal(t, "preset", password)
	assert.Contains(t, out.String(), "Enter your email: ")
	assert.NotContains(t, out.String(), "Enter your password")

	location, job := "", "golang"
	require.NoError(t, p.fill("Search details",
		promptField{"Enter location", &location},
		promptField{"Enter job", &job},
	))
	assert.Equal(t, "Berlin", location)
}

func TestPrompterSkipsHeaderWhenComplete(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader(""), &out)

	v := "set"
	require.NoError(t, p.fill("Login details", promptField{"Enter your email", &v}))
	assert.Empty(t, out.String())
}

func TestPrompterLastLineWithoutNewline(t *testing.T) {
	p := newPrompter(strings.NewReader("golang"), &bytes.Buffer{})
	v, err := p.ask("Enter job")
	require.NoError(t, err)
	assert.Equal(t, "golang", v)

	_, err = p.ask("Enter job")
	assert.Error(t, err)
}

func TestReplay(t *testing.T) {
	page := `<html><body>
<div class="job-card-job-posting-card-wrapper">
  <span class="job-card-job-posting-card-wrapper__title">Go Developer</span>
  <span class="artdeco-entity-lockup__subtitle">Acme</span>
  <span class="artdeco-entity-lockup__caption">Berlin</span>
</div>
<div class="job-card-job-posting-card-wrapper">
  <span class="artdeco-entity-lockup__subtitle">Initech</span>
</div>
</body></html>`
	path := filepath.Join(t.TempDir(), "results.html")
	require.NoError(t, os.WriteFile(path, []byte(page), 0644))

	var out bytes.Buffer
	rootCMD.SetOut(&out)
	rootCMD.SetArgs([]string{"replay", path})
	t.Cleanup(func() {
		rootCMD.SetOut(nil)
		rootCMD.SetArgs(nil)
	})

	require.NoError(t, rootCMD.Execute())
	assert.Equal(t, "\n1. Go Developer\n   Acme\n   Berlin\n\n2. N/A\n   Initech\n   N/A\n\nScraped 2 job(s).\n", out.String())
}

func TestMask(t *testing.T) {
	assert.Equal(t, "1234****", mask("123456:ABCDEF"))
	assert.Equal(t, "****", mask("abc"))
}
