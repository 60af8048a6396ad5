package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitCompound(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    []string
	}{
		{"simple", "git status", []string{"git status"}},
		{"and chain", "git add . && git commit -m 'msg'", []string{"git add .", "git commit -m 'msg'"}},
		{"pipeline", "cat file.txt | grep pattern", []string{"cat file.txt", "grep pattern"}},
		{"semicolon", "make; make test", []string{"make", "make test"}},
		{"or chain", "test -f x || touch x", []string{"test -f x", "touch x"}},
		{"unbalanced quote", "echo 'oops", []string{"echo 'oops"}},
		{"empty", "", []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitCompound(tt.command))
		})
	}
}

func TestSplitCompound_Substitution(t *testing.T) {
	parts := SplitCompound("echo $(pwd)")
	assert.Contains(t, parts, "pwd")
	assert.Equal(t, "echo $(pwd)", parts[0])
}
