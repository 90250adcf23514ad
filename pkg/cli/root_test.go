package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/up42/blockctl/pkg/block"
)

func TestRootCommandHasTaskSubcommands(t *testing.T) {
	rootCmd, err := NewRootCommand()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, task := range []string{
		block.TaskBuildImageESASnap,
		block.TaskBuildImageUP42Snap,
		block.TaskBuildAll,
		block.TaskBuild,
		block.TaskValidate,
		block.TaskPush,
		block.TaskLogin,
		block.TaskRun,
	} {
		require.True(t, names[task], "missing subcommand %q", task)
	}
	require.True(t, names["tasks"])
}

func TestTasksCommandListsPrerequisites(t *testing.T) {
	rootCmd, err := NewRootCommand()
	require.NoError(t, err)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"tasks"})
	require.NoError(t, rootCmd.Execute())

	require.Contains(t, out.String(), block.TaskBuild)
	require.Contains(t, out.String(), "requires "+block.TaskBuildAll)
}
