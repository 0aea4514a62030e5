package flavor

// DemoRecords returns the small demonstration dataset offered on an empty
// database.
func DemoRecords() []Record {
	return []Record{
		{"豌豆", "Comp1", "杏仁味"},
		{"豌豆", "Comp2", "果香"},
		{"豌豆", "Comp3", "油脂味"},
		{"辣椒", "Comp2", "生青味"},
		{"辣椒", "Comp3", "油脂味"},
		{"辣椒", "Comp4", "辛辣"},
		{"测试A", "Comp2", "果香"},
		{"测试A", "Comp3", "油脂味"},
		{"测试B", "Comp1", "杏仁味"},
		{"测试B", "Comp4", "辛辣"},
		{"测试C", "Comp2", "生青味"},
		{"测试C", "Comp5", "特殊味"},
		{"测试C", "Comp6", "坚果味"},
	}
}
