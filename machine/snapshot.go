package machine

import (
	"github.com/colorfulnotion/intcode/machine/vmtypes"
	"github.com/colorfulnotion/intcode/vmerrors"
)

// Snapshot is the complete state of an instance.
type Snapshot struct {
	Name   string          `cbor:"name" json:"name"`
	Memory []int64         `cbor:"memory" json:"memory"`
	Sparse map[int64]int64 `cbor:"sparse,omitempty" json:"sparse,omitempty"`
	IP     int64           `cbor:"ip" json:"ip"`
	Base   int64           `cbor:"base" json:"base"`
	Status vmtypes.Status  `cbor:"status" json:"status"`
	Input  []int64         `cbor:"input,omitempty" json:"input,omitempty"`
	Output []int64         `cbor:"output,omitempty" json:"output,omitempty"`
	Steps  uint64          `cbor:"steps" json:"steps"`

	Outputs    uint64 `cbor:"outputs" json:"outputs"`
	LastOutput int64  `cbor:"last_output" json:"last_output"`

	// set when Status is FAULT
	FaultCode  string `cbor:"fault_code,omitempty" json:"fault_code,omitempty"`
	FaultIP    int64  `cbor:"fault_ip,omitempty" json:"fault_ip,omitempty"`
	FaultWord  int64  `cbor:"fault_word,omitempty" json:"fault_word,omitempty"`
	FaultValue int64  `cbor:"fault_value,omitempty" json:"fault_value,omitempty"`
}

// Snapshot captures the instance state. Queues are copied, not drained.
func (vm *VM) Snapshot() *Snapshot {
	s := &Snapshot{
		Name:       vm.Name,
		Memory:     vm.mem.Dense(),
		IP:         vm.ip,
		Base:       vm.base,
		Status:     vm.status,
		Input:      vm.input.Values(),
		Output:     vm.output.Values(),
		Steps:      vm.steps,
		Outputs:    vm.outputs,
		LastOutput: vm.lastOutput,
	}
	if sparse := vm.mem.Sparse(); len(sparse) > 0 {
		s.Sparse = sparse
	}
	if vm.fault != nil {
		s.FaultCode = vmerrors.GetErrorCode(vm.fault)
		s.FaultIP = vm.fault.IP
		s.FaultWord = vm.fault.Word
		s.FaultValue = vm.fault.Value
	}
	return s
}

// Restore builds an instance from a snapshot. Options apply after the
// snapshot state, so WithInput appends to the restored input queue.
func Restore(s *Snapshot, opts ...Option) *VM {
	vm := &VM{
		Name:       s.Name,
		mem:        NewMemory(s.Memory),
		ip:         s.IP,
		base:       s.Base,
		status:     s.Status,
		input:      NewQueue(s.Input...),
		output:     NewQueue(s.Output...),
		steps:      s.Steps,
		outputs:    s.Outputs,
		lastOutput: s.LastOutput,
	}
	for addr, v := range s.Sparse {
		vm.mem.sparse[addr] = v
	}
	if s.Status == FAULT {
		vm.fault = &vmerrors.Fault{
			IP:    s.FaultIP,
			Word:  s.FaultWord,
			Value: s.FaultValue,
			Err:   vmerrors.FromCode(s.FaultCode),
		}
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}
