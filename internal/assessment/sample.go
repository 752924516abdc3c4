package assessment

import "time"

// SampleAssessments returns the seed record shown on a fresh dashboard.
func SampleAssessments() []*Assessment {
	ts := time.Date(2024, time.March, 10, 10, 0, 0, 0, time.UTC)
	return []*Assessment{
		{
			ID:             "1",
			SubmittedAt:    ts,
			Status:         StatusPending,
			VendorName:     "CloudTech Solutions",
			ServiceName:    "Data Storage Service",
			DeploymentType: "SaaS (Software as a Service)",
			UseCase:        "Cloud storage for company documents",
			NumUsers:       50,
			NumRecords:     10000,
			ContactInfo: ContactInfo{
				Name:  "John Doe",
				Email: "john@cloudtech.com",
				Phone: "123-456-7890",
			},
			Documents: Documents{
				Certifications: []string{"ISO27001.pdf"},
				Additional:     []string{"SLA.pdf", "NDA.pdf"},
			},
			LastUpdated: ts,
		},
	}
}
