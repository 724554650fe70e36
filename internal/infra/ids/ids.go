package ids

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// 代替注文IDに使うビット数（JSの安全な整数に収まる）
const localIDBits = 52

// ローカル代替注文のID。サーバーIDは正なので負の空間を使う。
type LocalOrderIDs struct {
	newUUID func() uuid.UUID
}

func NewLocalOrderIDs() *LocalOrderIDs {
	return &LocalOrderIDs{newUUID: uuid.New}
}

func (g *LocalOrderIDs) NewLocalOrderID() int64 {
	return LocalOrderID(g.newUUID())
}

// UUIDv4の下位52ビットから負のIDを作る（0にはしない）
func LocalOrderID(u uuid.UUID) int64 {
	v := binary.BigEndian.Uint64(u[8:]) & (1<<localIDBits - 1)
	if v == 0 {
		v = 1
	}
	return -int64(v)
}

// ブラウザプロファイル相当のID
func NewProfileID() string {
	return uuid.NewString()
}

// 値がプロファイルIDとして使えるか
func ValidProfileID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// middleware.ProfileIDs の実装
type Profiles struct{}

func (Profiles) NewProfileID() string         { return NewProfileID() }
func (Profiles) ValidProfileID(s string) bool { return ValidProfileID(s) }
