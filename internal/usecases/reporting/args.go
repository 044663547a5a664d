package reporting

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	ogurydomain "github.com/vfg2006/ogury-mcp-server/infrastructure/integrator/ogury/domain"
	"github.com/vfg2006/ogury-mcp-server/pkg/utils"
)

type campaignDetailsArgs struct {
	CampaignID *float64 `mapstructure:"campaignId" validate:"required"`
	StartDate  string   `mapstructure:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate    string   `mapstructure:"endDate" validate:"required,datetime=2006-01-02"`
	AccountID  string   `mapstructure:"accountId"`
	BrandID    string   `mapstructure:"brandId"`
}

type campaignsReportArgs struct {
	StartDate   string   `mapstructure:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate     string   `mapstructure:"endDate" validate:"required,datetime=2006-01-02"`
	AccountID   string   `mapstructure:"accountId"`
	BrandID     string   `mapstructure:"brandId"`
	CampaignID  *float64 `mapstructure:"campaignId"`
	Identifier1 string   `mapstructure:"identifier1"`
	Identifier2 string   `mapstructure:"identifier2"`
	Identifier3 string   `mapstructure:"identifier3"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// decodeArgs copies the loosely typed arguments into out. Numeric strings are
// accepted for numbers and numbers for strings.
func decodeArgs(args map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}

	if err := decoder.Decode(args); err != nil {
		var decodeErr *mapstructure.Error
		if errors.As(err, &decodeErr) {
			return NewValidationError(decodeErr.Errors...)
		}
		return NewValidationError(err.Error())
	}

	return nil
}

func (s *Service) validateArgs(args any) error {
	err := s.validate.Struct(args)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return NewValidationError(err.Error())
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describeFieldError(fe))
	}

	return NewValidationError(problems...)
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "missing required argument: " + fe.Field()
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", fe.Field())
	default:
		return fmt.Sprintf("invalid argument: %s", fe.Field())
	}
}

func wholeNumber(name string, v float64) (int64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, NewValidationError(fmt.Sprintf("%s must be a whole number", name))
	}
	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold
	if v < math.MinInt64 || v >= math.MaxInt64 {
		return 0, NewValidationError(fmt.Sprintf("%s is out of range", name))
	}
	return int64(v), nil
}

// numericArg vets a numeric argument before weak decoding would coerce it.
// A blank string counts as absent and a bool is rejected.
func numericArg(args map[string]any, name string) (map[string]any, error) {
	switch v := args[name].(type) {
	case bool:
		return nil, NewValidationError(fmt.Sprintf("%s must be a number", name))
	case string:
		if strings.TrimSpace(v) != "" {
			return args, nil
		}
		trimmed := make(map[string]any, len(args))
		for k, val := range args {
			if k != name {
				trimmed[k] = val
			}
		}
		return trimmed, nil
	default:
		return args, nil
	}
}

func dateRange(start, end string) error {
	if err := utils.ValidateDateRange(start, end); err != nil {
		return NewValidationError(err.Error())
	}
	return nil
}

func (s *Service) parseCampaignQuery(args map[string]any) (ogurydomain.CampaignQuery, error) {
	args, err := numericArg(args, "campaignId")
	if err != nil {
		return ogurydomain.CampaignQuery{}, err
	}

	var in campaignDetailsArgs
	if err := decodeArgs(args, &in); err != nil {
		return ogurydomain.CampaignQuery{}, err
	}
	if err := s.validateArgs(in); err != nil {
		return ogurydomain.CampaignQuery{}, err
	}

	campaignID, err := wholeNumber("campaignId", *in.CampaignID)
	if err != nil {
		return ogurydomain.CampaignQuery{}, err
	}
	if err := dateRange(in.StartDate, in.EndDate); err != nil {
		return ogurydomain.CampaignQuery{}, err
	}

	return ogurydomain.CampaignQuery{
		CampaignID: campaignID,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		AccountID:  in.AccountID,
		BrandID:    in.BrandID,
	}, nil
}

func (s *Service) parseReportQuery(args map[string]any) (ogurydomain.ReportQuery, error) {
	args, err := numericArg(args, "campaignId")
	if err != nil {
		return ogurydomain.ReportQuery{}, err
	}

	var in campaignsReportArgs
	if err := decodeArgs(args, &in); err != nil {
		return ogurydomain.ReportQuery{}, err
	}
	if err := s.validateArgs(in); err != nil {
		return ogurydomain.ReportQuery{}, err
	}
	if err := dateRange(in.StartDate, in.EndDate); err != nil {
		return ogurydomain.ReportQuery{}, err
	}

	query := ogurydomain.ReportQuery{
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		AccountID:   in.AccountID,
		BrandID:     in.BrandID,
		Identifier1: in.Identifier1,
		Identifier2: in.Identifier2,
		Identifier3: in.Identifier3,
	}

	if in.CampaignID != nil {
		campaignID, err := wholeNumber("campaignId", *in.CampaignID)
		if err != nil {
			return ogurydomain.ReportQuery{}, err
		}
		query.CampaignID = &campaignID
	}

	return query, nil
}
