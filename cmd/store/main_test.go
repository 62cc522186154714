package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertCmd(t *testing.T) {
	var out bytes.Buffer
	convertCmd.SetOut(&out)
	require.NoError(t, convertCmd.RunE(convertCmd, []string{"25", "SEK", "EUR"}))
	assert.Equal(t, "2.33\n", out.String())

	out.Reset()
	require.NoError(t, convertCmd.RunE(convertCmd, []string{"1", "eur", "sek"}))
	assert.Equal(t, "10.75\n", out.String())

	assert.Error(t, convertCmd.RunE(convertCmd, []string{"1", "SEK", "USD"}))
	assert.Error(t, convertCmd.RunE(convertCmd, []string{"one", "SEK", "EUR"}))
}

func TestProductArgs(t *testing.T) {
	p, err := productArgs([]string{"Apple", "12.99", "100"})
	require.NoError(t, err)
	assert.Equal(t, "Apple", p.Name)
	assert.Equal(t, "12.99", p.PriceSEK.StringFixed(2))
	assert.Equal(t, 100, p.Quantity)

	_, err = productArgs([]string{"Apple", "cheap", "1"})
	assert.Error(t, err)
	_, err = productArgs([]string{"Apple", "1", "many"})
	assert.Error(t, err)
}

func TestRootCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"shop", "seed", "migrate", "migrate:rollback", "migrate:status", "convert", "catalog", "cart", "metrics"} {
		assert.True(t, names[want], want)
	}
}
