package resp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommand_Bytes(t *testing.T) {
	assert.Equal(t, []byte("PING"), CmdPing.Bytes())
	assert.Equal(t, []byte("ZRANGEBYSCORE"), CmdZRangeByScore.Bytes())
	assert.Equal(t, []byte("CLUSTER"), CmdCluster.Bytes())
	assert.Equal(t, []byte("RENAMEX"), CmdRenameX.Bytes())
	assert.Equal(t, []byte("ZRANGEBYLEX"), CmdZRangeByLex.Bytes())
	assert.Equal(t, []byte("ZREMRANGEBYLEX"), CmdZRemRangeByLex.Bytes())
	assert.Equal(t, []byte("BITPOS"), CmdBitPos.Bytes())
}

func TestCommand_RegistryComplete(t *testing.T) {
	// Every token has a name and the precomputed bytes match it.
	for i, name := range commandNames {
		assert.NotEmpty(t, name, "command %d has no name", i)
		assert.Equal(t, []byte(name), Command(i).Bytes())
	}
}

func TestLookupCommand(t *testing.T) {
	c, ok := LookupCommand("get")
	assert.True(t, ok)
	assert.Equal(t, CmdGet, c)

	c, ok = LookupCommand("HGetAll")
	assert.True(t, ok)
	assert.Equal(t, CmdHGetAll, c)

	_, ok = LookupCommand("NOTACOMMAND")
	assert.False(t, ok)
}

func TestKeyword_BytesAreLowercase(t *testing.T) {
	assert.Equal(t, []byte("withscores"), KwWithScores.Bytes())
	assert.Equal(t, []byte("limit"), KwLimit.Bytes())
	assert.Equal(t, []byte("pmessage"), KwPMessage.Bytes())
	assert.Equal(t, []byte("punsubscribe"), KwPUnsubscribe.Bytes())
	assert.Equal(t, "WITHSCORES", KwWithScores.String())
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, []byte("42"), FormatInt(42))
	assert.Equal(t, []byte("-7"), FormatInt(-7))
	assert.Equal(t, []byte("1.5"), FormatFloat(1.5))
	assert.Equal(t, []byte("1"), FormatBool(true))
	assert.Equal(t, []byte("0"), FormatBool(false))
}
