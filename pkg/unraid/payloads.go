package unraid

import (
	"fmt"
	"strconv"
	"strings"
)

// flexInt decodes JSON numbers or numeric strings. The server's Long
// scalars arrive as either form depending on the API version.
type flexInt int64

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		*f = flexInt(n)
		return nil
	}

	// Some capacity fields report fractional values.
	fv, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil {
		return fmt.Errorf("invalid numeric value %q: %w", s, err)
	}

	*f = flexInt(int64(fv))

	return nil
}

type apiVersionPayload struct {
	Info struct {
		Versions struct {
			Core struct {
				API string `json:"api"`
			} `json:"core"`
		} `json:"versions"`
	} `json:"info"`
}

type serverInfoPayload struct {
	Server struct {
		LocalURL string `json:"localurl"`
		Name     string `json:"name"`
	} `json:"server"`
	Info struct {
		OS *struct {
			Uptime string `json:"uptime"`
		} `json:"os"`
		Versions struct {
			Core struct {
				Unraid string `json:"unraid"`
			} `json:"core"`
		} `json:"versions"`
	} `json:"info"`
}

type memoryPayload struct {
	Free         flexInt `json:"free"`
	Total        flexInt `json:"total"`
	Active       flexInt `json:"active"`
	Available    flexInt `json:"available"`
	PercentTotal float64 `json:"percentTotal"`
}

type metricsPayload struct {
	Metrics struct {
		Memory memoryPayload `json:"memory"`
		CPU    struct {
			PercentTotal float64 `json:"percentTotal"`
		} `json:"cpu"`
	} `json:"metrics"`
	Info *struct {
		CPU struct {
			Packages struct {
				Power []float64 `json:"power"`
				Temp  []float64 `json:"temp"`
			} `json:"packages"`
		} `json:"cpu"`
	} `json:"info"`
}

type sharePayload struct {
	Name      string  `json:"name"`
	Free      flexInt `json:"free"`
	Used      flexInt `json:"used"`
	Size      flexInt `json:"size"`
	Allocator string  `json:"allocator"`
	Floor     string  `json:"floor"`
}

type sharesPayload struct {
	Shares []sharePayload `json:"shares"`
}

type diskPayload struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Status     string   `json:"status"`
	Type       string   `json:"type"`
	Temp       *int64   `json:"temp"`
	IsSpinning bool     `json:"isSpinning"`
	FSSize     *flexInt `json:"fsSize"`
	FSFree     *flexInt `json:"fsFree"`
	FSUsed     *flexInt `json:"fsUsed"`
}

type disksPayload struct {
	Array struct {
		Disks    []diskPayload `json:"disks"`
		Parities []diskPayload `json:"parities"`
		Caches   []diskPayload `json:"caches"`
	} `json:"array"`
}

type parityCheckPayload struct {
	Status   string  `json:"status"`
	Date     string  `json:"date"`
	Duration flexInt `json:"duration"`
	Speed    float64 `json:"speed"`
	Errors   *int64  `json:"errors"`
	Progress float64 `json:"progress"`
}

type arrayPayload struct {
	Array struct {
		State    string `json:"state"`
		Capacity struct {
			Kilobytes struct {
				Free  flexInt `json:"free"`
				Used  flexInt `json:"used"`
				Total flexInt `json:"total"`
			} `json:"kilobytes"`
		} `json:"capacity"`
		ParityCheck *parityCheckPayload `json:"parityCheck"`
	} `json:"array"`
}

type upsDevicePayload struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Model   string `json:"model"`
	Status  string `json:"status"`
	Battery struct {
		ChargeLevel      flexInt `json:"chargeLevel"`
		EstimatedRuntime flexInt `json:"estimatedRuntime"`
		Health           string  `json:"health"`
	} `json:"battery"`
	Power struct {
		LoadPercentage float64  `json:"loadPercentage"`
		InputVoltage   *float64 `json:"inputVoltage"`
		OutputVoltage  *float64 `json:"outputVoltage"`
	} `json:"power"`
}

type upsPayload struct {
	UPSDevices []upsDevicePayload `json:"upsDevices"`
}

type vmsPayload struct {
	VMs struct {
		Domain []struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			State string `json:"state"`
		} `json:"domain"`
	} `json:"vms"`
}

type containerPayload struct {
	ID        string   `json:"id"`
	Names     []string `json:"names"`
	State     string   `json:"state"`
	Image     string   `json:"image"`
	Status    string   `json:"status"`
	AutoStart bool     `json:"autoStart"`
}

type dockerPayload struct {
	Docker struct {
		Containers []containerPayload `json:"containers"`
	} `json:"docker"`
}

type vmMutationPayload struct {
	VM struct {
		Start *bool `json:"start"`
		Stop  *bool `json:"stop"`
	} `json:"vm"`
}

type containerMutationPayload struct {
	Docker struct {
		Start *containerPayload `json:"start"`
		Stop  *containerPayload `json:"stop"`
	} `json:"docker"`
}

type parityMutationPayload struct {
	ParityCheck struct {
		Start  *bool `json:"start"`
		Pause  *bool `json:"pause"`
		Resume *bool `json:"resume"`
		Cancel *bool `json:"cancel"`
	} `json:"parityCheck"`
}
