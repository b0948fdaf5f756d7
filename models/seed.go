package models

// Seed data used when a collection has no stored value yet (or the stored
// value cannot be read). A first-run convenience only; deleting records
// afterwards does not bring these back.

// SeedMembers returns the initial members collection
func SeedMembers() []Member {
	return []Member{
		{
			ID:        1,
			Name:      "John Smith",
			Phone:     "(555) 123-4567",
			Address:   "123 Main St, City, State",
			Residence: "Accra",
			JoinDate:  "2023-01-15",
			Ministry:  "Worship Team",
			Status:    MemberStatusActive,
		},
		{
			ID:        2,
			Name:      "Sarah Johnson",
			Phone:     "(555) 987-6543",
			Address:   "456 Oak Ave, City, State",
			Residence: "Tema",
			JoinDate:  "2022-06-20",
			Ministry:  "Children's Ministry",
			Status:    MemberStatusActive,
		},
	}
}

// SeedEvents returns the initial events collection
func SeedEvents() []Event {
	return []Event{
		{
			ID:          1,
			Title:       "Sunday Service",
			Date:        "2025-08-24",
			Time:        "10:00 AM",
			Location:    "Main Sanctuary",
			Description: "Weekly worship service",
			Type:        EventTypeService,
		},
		{
			ID:          2,
			Title:       "Bible Study",
			Date:        "2025-08-27",
			Time:        "7:00 PM",
			Location:    "Fellowship Hall",
			Description: "Midweek Bible study and prayer",
			Type:        EventTypeStudy,
		},
	}
}

// SeedTithes returns the initial tithes collection
func SeedTithes() []Tithe {
	return []Tithe{
		{ID: 1, Donor: "John Smith", Amount: 250, Date: "2025-08-15", Method: TitheMethodCheck},
		{ID: 2, Donor: "Sarah Johnson", Amount: 100, Date: "2025-08-15", Method: TitheMethodCash},
	}
}

// SeedDues returns the initial dues collection
func SeedDues() []DuesRecord {
	return []DuesRecord{
		{
			ID:         1,
			MemberID:   1,
			MemberName: "John Smith",
			Year:       2025,
			Months: MonthAmounts{
				"jan": 50, "feb": 50, "mar": 50, "apr": 50, "may": 50, "jun": 50,
				"jul": 50, "aug": 50, "sep": 0, "oct": 0, "nov": 0, "dec": 0,
			},
		},
		{
			ID:         2,
			MemberID:   2,
			MemberName: "Sarah Johnson",
			Year:       2025,
			Months: MonthAmounts{
				"jan": 50, "feb": 50, "mar": 50, "apr": 50, "may": 50, "jun": 50,
				"jul": 50, "aug": 0, "sep": 0, "oct": 0, "nov": 0, "dec": 0,
			},
		},
	}
}

// SeedCommunications returns the initial communications collection
func SeedCommunications() []Communication {
	return []Communication{
		{
			ID:         1,
			Title:      "Weekly Newsletter",
			Content:    "This week's updates and announcements...",
			Date:       "2025-08-19",
			Type:       CommunicationTypeNewsletter,
			Recipients: RecipientGroupAllMembers,
		},
	}
}
