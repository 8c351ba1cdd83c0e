package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sshtesting "github.com/wscrape/wscrape/pkg/sshutil/testing"
)

func TestExecute(t *testing.T) {
	mock := sshtesting.NewMockClient("box")
	mock.SetResponse("w", sshtesting.CommandResponse{Stdout: []byte(sampleOutput)})

	out, err := Execute(mock)
	require.NoError(t, err)
	assert.Equal(t, sampleOutput, out)
	assert.Equal(t, []string{"w"}, mock.Calls(), "exactly one remote invocation per call")
}

func TestExecute_SessionFailure(t *testing.T) {
	mock := sshtesting.NewMockClient("box")
	mock.Close()

	_, err := Execute(mock)
	assert.Error(t, err)
}

func TestExecute_NonZeroExit(t *testing.T) {
	mock := sshtesting.NewMockClient("box")
	mock.SetResponse("w", sshtesting.CommandResponse{Stderr: []byte("not found"), ExitCode: 127})

	_, err := Execute(mock)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "127")
}
