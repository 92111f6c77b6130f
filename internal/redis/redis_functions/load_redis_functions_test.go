package redis_functions

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/require"
)

func embedded(t *testing.T) string {
	t.Helper()
	code, err := fs.ReadFile("rentauction.lua")
	require.NoError(t, err)
	return string(code)
}

func TestLoadAll(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectFunctionLoadReplace(embedded(t)).SetVal(Library)

	names, err := LoadAll(context.Background(), rdb)
	require.NoError(t, err)
	require.Equal(t, []string{Library}, names)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadAll_NameMismatch(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectFunctionLoadReplace(embedded(t)).SetVal("other")

	_, err := LoadAll(context.Background(), rdb)
	require.ErrorContains(t, err, `registered "other"`)
}

func TestLoadAll_RedisError(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectFunctionLoadReplace(embedded(t)).SetErr(errors.New("ERR scripting disabled"))

	_, err := LoadAll(context.Background(), rdb)
	require.ErrorContains(t, err, "scripting disabled")
}

func TestLibraryName(t *testing.T) {
	name, err := libraryName("#!lua name=rentauction\nlocal x = 1")
	require.NoError(t, err)
	require.Equal(t, "rentauction", name)

	_, err = libraryName("-- no header\n")
	require.Error(t, err)

	_, err = libraryName("#!lua name=  \n")
	require.Error(t, err)
}
