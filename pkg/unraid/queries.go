// Package unraid pkg/unraid/queries.go holds the fixed GraphQL
// documents, one set per supported API version.
package unraid

const queryAPIVersion = `
query ApiVersion {
  info {
    versions {
      core {
        api
      }
    }
  }
}
`

const queryServerInfo = `
query ServerInfo {
  server {
    localurl
    name
  }
  info {
    os {
      uptime
    }
    versions {
      core {
        unraid
      }
    }
  }
}
`

const queryMetrics = `
query Metrics {
  metrics {
    memory {
      free
      total
      percentTotal
      active
      available
    }
    cpu {
      percentTotal
    }
  }
}
`

// queryMetricsV426 adds the CPU package sensors introduced with API 4.26.
const queryMetricsV426 = `
query Metrics {
  metrics {
    memory {
      free
      total
      percentTotal
      active
      available
    }
    cpu {
      percentTotal
    }
  }
  info {
    cpu {
      packages {
        power
        temp
      }
    }
  }
}
`

const queryShares = `
query Shares {
  shares {
    name
    free
    used
    size
    allocator
    floor
  }
}
`

const queryDisks = `
query Disks {
  array {
    disks {
      name
      status
      temp
      fsSize
      fsFree
      fsUsed
      type
      id
      isSpinning
    }
    parities {
      name
      status
      temp
      type
      id
      isSpinning
    }
    caches {
      name
      status
      temp
      fsSize
      fsFree
      fsUsed
      type
      id
      isSpinning
    }
  }
}
`

const queryArray = `
query Array {
  array {
    state
    capacity {
      kilobytes {
        free
        used
        total
      }
    }
    parityCheck {
      status
      date
      duration
      speed
      errors
      progress
    }
  }
}
`

const queryUPSDevices = `
query UPSDevices {
  upsDevices {
    id
    name
    model
    status
    battery {
      chargeLevel
      estimatedRuntime
      health
    }
    power {
      loadPercentage
      inputVoltage
      outputVoltage
    }
  }
}
`

const queryVMs = `
query VMs {
  vms {
    domain {
      id
      name
      state
    }
  }
}
`

const queryDocker = `
query Docker {
  docker {
    containers {
      id
      names
      state
      image
      status
      autoStart
    }
  }
}
`

const mutationStartVM = `
mutation StartVM($id: PrefixedID!) {
  vm {
    start(id: $id)
  }
}
`

const mutationStopVM = `
mutation StopVM($id: PrefixedID!) {
  vm {
    stop(id: $id)
  }
}
`

const mutationStartContainer = `
mutation StartContainer($id: PrefixedID!) {
  docker {
    start(id: $id) {
      id
      names
      state
    }
  }
}
`

const mutationStopContainer = `
mutation StopContainer($id: PrefixedID!) {
  docker {
    stop(id: $id) {
      id
      names
      state
    }
  }
}
`

const mutationStartParityCheck = `
mutation StartParityCheck {
  parityCheck {
    start
  }
}
`

const mutationPauseParityCheck = `
mutation PauseParityCheck {
  parityCheck {
    pause
  }
}
`

const mutationResumeParityCheck = `
mutation ResumeParityCheck {
  parityCheck {
    resume
  }
}
`

const mutationCancelParityCheck = `
mutation CancelParityCheck {
  parityCheck {
    cancel
  }
}
`

// SubscriptionCPU streams CPU utilization over graphql-transport-ws.
const SubscriptionCPU = `
subscription CpuMetrics {
  metrics {
    cpu {
      percentTotal
    }
  }
}
`

// SubscriptionMemory streams memory utilization over graphql-transport-ws.
const SubscriptionMemory = `
subscription MemoryMetrics {
  metrics {
    memory {
      free
      total
      percentTotal
      active
      available
    }
  }
}
`
