package resp

import (
	"strconv"
	"strings"
	"time"
)

// Protocol defaults.
const (
	DefaultPort         = 6379
	DefaultSentinelPort = 26379
	DefaultTimeout      = 2 * time.Second
	DefaultDatabase     = 0
)

// Command identifies one token in the closed command registry. The registry
// is fixed at startup; unknown tokens are a caller error, not a protocol
// concept.
type Command uint16

const (
	CmdPing Command = iota
	CmdSet
	CmdGet
	CmdQuit
	CmdExists
	CmdDel
	CmdType
	CmdFlushDB
	CmdKeys
	CmdRandomKey
	CmdRename
	CmdRenameNX
	CmdDBSize
	CmdExpire
	CmdExpireAt
	CmdTTL
	CmdSelect
	CmdMove
	CmdFlushAll
	CmdGetSet
	CmdMGet
	CmdSetNX
	CmdSetEX
	CmdMSet
	CmdMSetNX
	CmdDecrBy
	CmdDecr
	CmdIncrBy
	CmdIncr
	CmdAppend
	CmdSubstr
	CmdHSet
	CmdHGet
	CmdHSetNX
	CmdHMSet
	CmdHMGet
	CmdHIncrBy
	CmdHExists
	CmdHDel
	CmdHLen
	CmdHKeys
	CmdHVals
	CmdHGetAll
	CmdRPush
	CmdLPush
	CmdLLen
	CmdLRange
	CmdLTrim
	CmdLIndex
	CmdLSet
	CmdLRem
	CmdLPop
	CmdRPop
	CmdRPopLPush
	CmdSAdd
	CmdSMembers
	CmdSRem
	CmdSPop
	CmdSMove
	CmdSCard
	CmdSIsMember
	CmdSInter
	CmdSInterStore
	CmdSUnion
	CmdSUnionStore
	CmdSDiff
	CmdSDiffStore
	CmdSRandMember
	CmdZAdd
	CmdZRange
	CmdZRem
	CmdZIncrBy
	CmdZRank
	CmdZRevRank
	CmdZRevRange
	CmdZCard
	CmdZScore
	CmdMulti
	CmdDiscard
	CmdExec
	CmdWatch
	CmdUnwatch
	CmdSort
	CmdBLPop
	CmdBRPop
	CmdAuth
	CmdSubscribe
	CmdPublish
	CmdUnsubscribe
	CmdPSubscribe
	CmdPUnsubscribe
	CmdPubSub
	CmdZCount
	CmdZRangeByScore
	CmdZRevRangeByScore
	CmdZRemRangeByRank
	CmdZRemRangeByScore
	CmdZUnionStore
	CmdZInterStore
	CmdSave
	CmdBGSave
	CmdBGRewriteAOF
	CmdLastSave
	CmdShutdown
	CmdInfo
	CmdMonitor
	CmdSlaveOf
	CmdConfig
	CmdStrLen
	CmdLPushX
	CmdPersist
	CmdRPushX
	CmdEcho
	CmdLInsert
	CmdBRPopLPush
	CmdSetBit
	CmdGetBit
	CmdSetRange
	CmdGetRange
	CmdEval
	CmdEvalSHA
	CmdScript
	CmdSlowlog
	CmdObject
	CmdBitCount
	CmdBitOp
	CmdSentinel
	CmdDump
	CmdRestore
	CmdPExpire
	CmdPExpireAt
	CmdPTTL
	CmdIncrByFloat
	CmdPSetEX
	CmdClient
	CmdTime
	CmdMigrate
	CmdHIncrByFloat
	CmdScan
	CmdHScan
	CmdSScan
	CmdZScan
	CmdWait
	CmdCluster
	CmdAsking
	CmdPFAdd
	CmdPFCount
	CmdPFMerge
	CmdRenameX
	CmdZLexCount
	CmdZRangeByLex
	CmdZRemRangeByLex
	CmdSync
	CmdDebug
	CmdBitPos
)

var commandNames = [...]string{
	CmdPing:             "PING",
	CmdSet:              "SET",
	CmdGet:              "GET",
	CmdQuit:             "QUIT",
	CmdExists:           "EXISTS",
	CmdDel:              "DEL",
	CmdType:             "TYPE",
	CmdFlushDB:          "FLUSHDB",
	CmdKeys:             "KEYS",
	CmdRandomKey:        "RANDOMKEY",
	CmdRename:           "RENAME",
	CmdRenameNX:         "RENAMENX",
	CmdDBSize:           "DBSIZE",
	CmdExpire:           "EXPIRE",
	CmdExpireAt:         "EXPIREAT",
	CmdTTL:              "TTL",
	CmdSelect:           "SELECT",
	CmdMove:             "MOVE",
	CmdFlushAll:         "FLUSHALL",
	CmdGetSet:           "GETSET",
	CmdMGet:             "MGET",
	CmdSetNX:            "SETNX",
	CmdSetEX:            "SETEX",
	CmdMSet:             "MSET",
	CmdMSetNX:           "MSETNX",
	CmdDecrBy:           "DECRBY",
	CmdDecr:             "DECR",
	CmdIncrBy:           "INCRBY",
	CmdIncr:             "INCR",
	CmdAppend:           "APPEND",
	CmdSubstr:           "SUBSTR",
	CmdHSet:             "HSET",
	CmdHGet:             "HGET",
	CmdHSetNX:           "HSETNX",
	CmdHMSet:            "HMSET",
	CmdHMGet:            "HMGET",
	CmdHIncrBy:          "HINCRBY",
	CmdHExists:          "HEXISTS",
	CmdHDel:             "HDEL",
	CmdHLen:             "HLEN",
	CmdHKeys:            "HKEYS",
	CmdHVals:            "HVALS",
	CmdHGetAll:          "HGETALL",
	CmdRPush:            "RPUSH",
	CmdLPush:            "LPUSH",
	CmdLLen:             "LLEN",
	CmdLRange:           "LRANGE",
	CmdLTrim:            "LTRIM",
	CmdLIndex:           "LINDEX",
	CmdLSet:             "LSET",
	CmdLRem:             "LREM",
	CmdLPop:             "LPOP",
	CmdRPop:             "RPOP",
	CmdRPopLPush:        "RPOPLPUSH",
	CmdSAdd:             "SADD",
	CmdSMembers:         "SMEMBERS",
	CmdSRem:             "SREM",
	CmdSPop:             "SPOP",
	CmdSMove:            "SMOVE",
	CmdSCard:            "SCARD",
	CmdSIsMember:        "SISMEMBER",
	CmdSInter:           "SINTER",
	CmdSInterStore:      "SINTERSTORE",
	CmdSUnion:           "SUNION",
	CmdSUnionStore:      "SUNIONSTORE",
	CmdSDiff:            "SDIFF",
	CmdSDiffStore:       "SDIFFSTORE",
	CmdSRandMember:      "SRANDMEMBER",
	CmdZAdd:             "ZADD",
	CmdZRange:           "ZRANGE",
	CmdZRem:             "ZREM",
	CmdZIncrBy:          "ZINCRBY",
	CmdZRank:            "ZRANK",
	CmdZRevRank:         "ZREVRANK",
	CmdZRevRange:        "ZREVRANGE",
	CmdZCard:            "ZCARD",
	CmdZScore:           "ZSCORE",
	CmdMulti:            "MULTI",
	CmdDiscard:          "DISCARD",
	CmdExec:             "EXEC",
	CmdWatch:            "WATCH",
	CmdUnwatch:          "UNWATCH",
	CmdSort:             "SORT",
	CmdBLPop:            "BLPOP",
	CmdBRPop:            "BRPOP",
	CmdAuth:             "AUTH",
	CmdSubscribe:        "SUBSCRIBE",
	CmdPublish:          "PUBLISH",
	CmdUnsubscribe:      "UNSUBSCRIBE",
	CmdPSubscribe:       "PSUBSCRIBE",
	CmdPUnsubscribe:     "PUNSUBSCRIBE",
	CmdPubSub:           "PUBSUB",
	CmdZCount:           "ZCOUNT",
	CmdZRangeByScore:    "ZRANGEBYSCORE",
	CmdZRevRangeByScore: "ZREVRANGEBYSCORE",
	CmdZRemRangeByRank:  "ZREMRANGEBYRANK",
	CmdZRemRangeByScore: "ZREMRANGEBYSCORE",
	CmdZUnionStore:      "ZUNIONSTORE",
	CmdZInterStore:      "ZINTERSTORE",
	CmdSave:             "SAVE",
	CmdBGSave:           "BGSAVE",
	CmdBGRewriteAOF:     "BGREWRITEAOF",
	CmdLastSave:         "LASTSAVE",
	CmdShutdown:         "SHUTDOWN",
	CmdInfo:             "INFO",
	CmdMonitor:          "MONITOR",
	CmdSlaveOf:          "SLAVEOF",
	CmdConfig:           "CONFIG",
	CmdStrLen:           "STRLEN",
	CmdLPushX:           "LPUSHX",
	CmdPersist:          "PERSIST",
	CmdRPushX:           "RPUSHX",
	CmdEcho:             "ECHO",
	CmdLInsert:          "LINSERT",
	CmdBRPopLPush:       "BRPOPLPUSH",
	CmdSetBit:           "SETBIT",
	CmdGetBit:           "GETBIT",
	CmdSetRange:         "SETRANGE",
	CmdGetRange:         "GETRANGE",
	CmdEval:             "EVAL",
	CmdEvalSHA:          "EVALSHA",
	CmdScript:           "SCRIPT",
	CmdSlowlog:          "SLOWLOG",
	CmdObject:           "OBJECT",
	CmdBitCount:         "BITCOUNT",
	CmdBitOp:            "BITOP",
	CmdSentinel:         "SENTINEL",
	CmdDump:             "DUMP",
	CmdRestore:          "RESTORE",
	CmdPExpire:          "PEXPIRE",
	CmdPExpireAt:        "PEXPIREAT",
	CmdPTTL:             "PTTL",
	CmdIncrByFloat:      "INCRBYFLOAT",
	CmdPSetEX:           "PSETEX",
	CmdClient:           "CLIENT",
	CmdTime:             "TIME",
	CmdMigrate:          "MIGRATE",
	CmdHIncrByFloat:     "HINCRBYFLOAT",
	CmdScan:             "SCAN",
	CmdHScan:            "HSCAN",
	CmdSScan:            "SSCAN",
	CmdZScan:            "ZSCAN",
	CmdWait:             "WAIT",
	CmdCluster:          "CLUSTER",
	CmdAsking:           "ASKING",
	CmdPFAdd:            "PFADD",
	CmdPFCount:          "PFCOUNT",
	CmdPFMerge:          "PFMERGE",
	CmdRenameX:          "RENAMEX",
	CmdZLexCount:        "ZLEXCOUNT",
	CmdZRangeByLex:      "ZRANGEBYLEX",
	CmdZRemRangeByLex:   "ZREMRANGEBYLEX",
	CmdSync:             "SYNC",
	CmdDebug:            "DEBUG",
	CmdBitPos:           "BITPOS",
}

var (
	commandBytes  [][]byte
	commandByName map[string]Command
)

func init() {
	commandBytes = make([][]byte, len(commandNames))
	commandByName = make(map[string]Command, len(commandNames))
	for i, name := range commandNames {
		commandBytes[i] = []byte(name)
		commandByName[name] = Command(i)
	}
}

// Bytes returns the precomputed wire form of the token.
func (c Command) Bytes() []byte { return commandBytes[c] }

func (c Command) String() string { return commandNames[c] }

// LookupCommand resolves a token name, case-insensitively.
func LookupCommand(name string) (Command, bool) {
	c, ok := commandByName[strings.ToUpper(name)]
	return c, ok
}

// Keyword identifies one token in the closed keyword registry. Keywords
// travel on the wire in lowercase.
type Keyword uint8

const (
	KwAggregate Keyword = iota
	KwAlpha
	KwAsc
	KwBy
	KwDesc
	KwGet
	KwLimit
	KwMessage
	KwNo
	KwNoSort
	KwOK
	KwOne
	KwQueued
	KwSet
	KwStore
	KwWeights
	KwWithScores
	KwResetStat
	KwReset
	KwFlush
	KwExists
	KwLoad
	KwKill
	KwLen
	KwRefCount
	KwEncoding
	KwIdleTime
	KwAnd
	KwOr
	KwXor
	KwNot
	KwGetName
	KwSetName
	KwList
	KwMatch
	KwCount
	KwPMessage
	KwSubscribe
	KwUnsubscribe
	KwPSubscribe
	KwPUnsubscribe
)

var keywordNames = [...]string{
	KwAggregate:    "AGGREGATE",
	KwAlpha:        "ALPHA",
	KwAsc:          "ASC",
	KwBy:           "BY",
	KwDesc:         "DESC",
	KwGet:          "GET",
	KwLimit:        "LIMIT",
	KwMessage:      "MESSAGE",
	KwNo:           "NO",
	KwNoSort:       "NOSORT",
	KwOK:           "OK",
	KwOne:          "ONE",
	KwQueued:       "QUEUED",
	KwSet:          "SET",
	KwStore:        "STORE",
	KwWeights:      "WEIGHTS",
	KwWithScores:   "WITHSCORES",
	KwResetStat:    "RESETSTAT",
	KwReset:        "RESET",
	KwFlush:        "FLUSH",
	KwExists:       "EXISTS",
	KwLoad:         "LOAD",
	KwKill:         "KILL",
	KwLen:          "LEN",
	KwRefCount:     "REFCOUNT",
	KwEncoding:     "ENCODING",
	KwIdleTime:     "IDLETIME",
	KwAnd:          "AND",
	KwOr:           "OR",
	KwXor:          "XOR",
	KwNot:          "NOT",
	KwGetName:      "GETNAME",
	KwSetName:      "SETNAME",
	KwList:         "LIST",
	KwMatch:        "MATCH",
	KwCount:        "COUNT",
	KwPMessage:     "PMESSAGE",
	KwSubscribe:    "SUBSCRIBE",
	KwUnsubscribe:  "UNSUBSCRIBE",
	KwPSubscribe:   "PSUBSCRIBE",
	KwPUnsubscribe: "PUNSUBSCRIBE",
}

var keywordBytes [][]byte

func init() {
	keywordBytes = make([][]byte, len(keywordNames))
	for i, name := range keywordNames {
		keywordBytes[i] = []byte(strings.ToLower(name))
	}
}

// Bytes returns the precomputed lowercase wire form of the keyword.
func (k Keyword) Bytes() []byte { return keywordBytes[k] }

func (k Keyword) String() string { return keywordNames[k] }

// FormatInt renders an integer argument in its decimal wire form.
func FormatInt(v int64) []byte {
	return strconv.AppendInt(nil, v, 10)
}

// FormatFloat renders a float argument in its decimal wire form.
func FormatFloat(v float64) []byte {
	return strconv.AppendFloat(nil, v, 'f', -1, 64)
}

// FormatBool renders a boolean argument as "1" or "0".
func FormatBool(v bool) []byte {
	if v {
		return []byte("1")
	}
	return []byte("0")
}
