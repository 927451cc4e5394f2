package model

import "time"

// SnapshotMessage is the payload published to Kafka after a snapshot upsert.
type SnapshotMessage struct {
	Language string     `json:"language"`
	Type     string     `json:"type"`
	Since    string     `json:"since"`
	Month    string     `json:"month"`
	Day      string     `json:"day"`
	Items    []SlimRepo `json:"items"`
	SyncedAt time.Time  `json:"synced_at"`
}

func NewSnapshotMessage(s TrendingSnapshot, syncedAt time.Time) SnapshotMessage {
	return SnapshotMessage{
		Language: s.Language,
		Type:     string(s.Type),
		Since:    string(s.Since),
		Month:    s.Month,
		Day:      s.Day,
		Items:    s.Items,
		SyncedAt: syncedAt,
	}
}

// Snapshot rebuilds the storable snapshot from a consumed message.
func (m SnapshotMessage) Snapshot() TrendingSnapshot {
	return TrendingSnapshot{
		Language: m.Language,
		Type:     ListingType(m.Type),
		Since:    Since(m.Since),
		Month:    m.Month,
		Day:      m.Day,
		Items:    m.Items,
	}
}
