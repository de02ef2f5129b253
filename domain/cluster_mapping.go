package domain

// CREATE TABLE public.cluster_mappings (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     ads_industry    TEXT NOT NULL,
//     ads_os_type     TEXT NOT NULL,
//     ads_month       TEXT NOT NULL,
//     cluster         INTEGER
// );

type ClusterMappingRow struct {
	ID        uint64 `gorm:"primaryKey;column:id;autoIncrement" json:"-"`
	Industry  string `gorm:"column:ads_industry;type:text;not null" json:"ads_industry"`
	OSType    string `gorm:"column:ads_os_type;type:text;not null" json:"ads_os_type"`
	Month     string `gorm:"column:ads_month;type:text;not null" json:"ads_month"`
	ClusterID *int   `gorm:"column:cluster" json:"cluster"`
}

func (ClusterMappingRow) TableName() string {
	return "cluster_mappings"
}
