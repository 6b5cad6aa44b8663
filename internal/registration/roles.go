package registration

import "strings"

// roleSpec is the single dispatch point for role-dependent behavior: the
// step-2 path, which detail fields are required, and how details merge into
// the upstream payload.
type roleSpec struct {
	NextPath string
	Validate func(DetailsInput) error
	Merge    func(Draft, DetailsInput) Payload
}

var roleSpecs = map[Role]roleSpec{
	RoleFarmer: {
		NextPath: "/register/farmer",
		Validate: func(d DetailsInput) error {
			return requireFields(d.BusinessName, d.StreetAddress, d.District, d.ZipCode, d.RegistrationNumber)
		},
		Merge: func(draft Draft, d DetailsInput) Payload {
			return Payload{
				FullName:         draft.FullName,
				Email:            draft.Email,
				Phone:            draft.Phone,
				Password:         draft.Password,
				Role:             RoleFarmer,
				BusinessName:     d.BusinessName,
				StreetAddress:    d.StreetAddress,
				District:         d.District,
				ZipCode:          d.ZipCode,
				Province:         d.Province,
				City:             d.City,
				Latitude:         d.Latitude,
				Longitude:        d.Longitude,
				BusinessRegOrNic: d.RegistrationNumber,
			}
		},
	},
	RoleBuyer: {
		NextPath: "/register/buyer",
		Validate: func(d DetailsInput) error {
			return requireFields(d.DeliveryAddress, d.District, d.ZipCode)
		},
		Merge: func(draft Draft, d DetailsInput) Payload {
			// The buyer form's delivery address travels as streetAddress and
			// buyers carry no business registration.
			return Payload{
				FullName:         draft.FullName,
				Email:            draft.Email,
				Phone:            draft.Phone,
				Password:         draft.Password,
				Role:             RoleBuyer,
				BusinessName:     d.BusinessName,
				StreetAddress:    d.DeliveryAddress,
				District:         d.District,
				ZipCode:          d.ZipCode,
				BusinessRegOrNic: "",
			}
		},
	},
}

func requireFields(values ...string) error {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return &ValidationError{Code: CodeMissingFields}
		}
	}
	return nil
}
